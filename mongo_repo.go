package accounts

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"go.mongodb.org/mongo-driver/mongo"
)

type mongoAccountRepository struct {
	collection *mongo.Collection
}

type dbAccount struct {
	ID                 ID       `bson:"_id"`
	Email              string   `bson:"email"`
	Password           string   `bson:"password"`
	FavouriteLocations []string `bson:"favouriteLocations"`
}

func NewMongoAccountRepository(c *mongo.Collection) Repository {
	return &mongoAccountRepository{collection: c}
}

func (m *mongoAccountRepository) FindByEmail(email string) (*Account, error) {
	var dba dbAccount
	sr := m.collection.FindOne(context.TODO(), bson.M{"email": email})

	if sr.Err() == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}

	if err := sr.Decode(&dba); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	acc := accountFromDBAccount(dba)
	return &acc, nil
}

func (m *mongoAccountRepository) FindAll() ([]Account, error) {
	cur, err := m.collection.Find(context.TODO(), bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(context.TODO())

	accounts := []Account{}
	for cur.Next(context.TODO()) {
		var dba dbAccount
		if err := cur.Decode(&dba); err != nil {
			return nil, err
		}
		accounts = append(accounts, accountFromDBAccount(dba))
	}

	if err := cur.Err(); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (m *mongoAccountRepository) Store(acc *Account) error {
	dba := dbAccountFromAccount(acc)
	_, err := m.collection.InsertOne(context.TODO(), &dba)
	return err
}

//Update saves the whole document back. Mutations are read-modify-write
// over the full record, so concurrent writers to the same account can
// lose updates.
func (m *mongoAccountRepository) Update(acc *Account) error {
	dba := dbAccountFromAccount(acc)
	_, err := m.collection.ReplaceOne(context.TODO(), bson.M{"_id": dba.ID}, dba)
	return err
}

func dbAccountFromAccount(a *Account) dbAccount {
	return dbAccount{a.ID, a.Email, a.PasswordHash, a.FavouriteLocations}
}

func accountFromDBAccount(dba dbAccount) Account {
	return Account{dba.ID, dba.Email, dba.Password, dba.FavouriteLocations}
}
