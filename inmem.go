package accounts

type accountRepository struct {
	accounts map[ID]*Account
}

func NewAccountRepository() Repository {
	return &accountRepository{accounts: map[ID]*Account{}}
}

func (repo *accountRepository) FindByEmail(email string) (*Account, error) {
	for _, acc := range repo.accounts {
		if acc.Email == email {
			return acc, nil
		}
	}
	return nil, ErrNotFound
}

func (repo *accountRepository) FindAll() ([]Account, error) {
	accs := []Account{}
	for _, acc := range repo.accounts {
		accs = append(accs, *acc)
	}
	return accs, nil
}

func (repo *accountRepository) Store(acc *Account) error {
	repo.accounts[acc.ID] = acc
	return nil
}

func (repo *accountRepository) Update(acc *Account) error {
	repo.accounts[acc.ID] = acc
	return nil
}
