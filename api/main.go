package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/julienschmidt/httprouter"

	. "github.com/rovermap/goaccounts"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(envOr("DB_URI", "mongodb://127.0.0.1:27017")))
	if err != nil {
		log.Fatal(err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}

	accounts := NewMongoAccountRepository(client.Database("rovermap").Collection("accounts"))
	svc := NewService(accounts)

	protected := func(rules []FieldRule, h http.Handler) http.Handler {
		return CORS(RequireToken(RequireAccountMatch(accounts, ValidateBody(rules, h))))
	}

	router := httprouter.New()
	router.Handler(http.MethodGet, "/", ListAccountsHandler(svc))
	router.Handler(http.MethodPost, "/", ValidateBody(CredentialRules, RegisterHandler(svc)))
	router.Handler(http.MethodPost, "/login", ValidateBody(CredentialRules, LoginHandler(svc)))
	router.Handler(http.MethodPatch, "/updatePassword", protected(PasswordChangeRules, UpdatePasswordHandler(svc)))
	router.Handler(http.MethodGet, "/fav", protected(EmailRules, FavouritesHandler(svc)))
	router.Handler(http.MethodPatch, "/addfav", protected(EmailRules, AddFavouriteHandler(svc)))
	router.Handler(http.MethodPatch, "/removefav", protected(EmailRules, RemoveFavouriteHandler(svc)))

	host := envOr("HOST", "127.0.0.1")
	port := envOr("PORT", "8090")
	log.Printf("Server started. Listening on http://%s:%s\n", host, port)
	log.Fatal(http.ListenAndServe(host+":"+port, router))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
