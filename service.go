package accounts

type Service interface {
	Accounts() ([]Account, error)
	Register(req registerRequest) (*Account, error)
	Login(req loginRequest) (loginResponse, error)
	UpdatePassword(req updatePasswordRequest) error
	Favourites(email string) ([]string, error)
	AddFavourite(req favouriteRequest) error
	RemoveFavourite(req favouriteRequest) error
}

type service struct {
	accounts Repository
}

func NewService(accounts Repository) Service {
	return &service{accounts: accounts}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID    ID     `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
	Token string `json:"token"`
}

type updatePasswordRequest struct {
	Email       string `json:"email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type favouriteRequest struct {
	Email      string `json:"email"`
	LocationID string `json:"locationId"`
}

func (svc *service) Accounts() ([]Account, error) {
	accs, err := svc.accounts.FindAll()
	if err != nil {
		return nil, ErrInternal
	}
	return accs, nil
}

func (svc *service) Register(req registerRequest) (*Account, error) {
	acc, err := NewAccount(req.Email)
	if err != nil {
		return nil, ErrInvalidInput
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, ErrInvalidInput
	}
	acc.PasswordHash = hash

	acc.ID = nextID()
	if err := svc.accounts.Store(acc); err != nil {
		return nil, ErrInternal
	}

	return acc, nil
}

//Login checks the supplied password against the stored hash. A wrong
// password is not an error: the caller gets a token of "none" and decides
// what to do with it. A matching one gets a fresh bearer token bound to
// the account id.
func (svc *service) Login(req loginRequest) (loginResponse, error) {
	acc, err := svc.findAccount(req.Email)
	if err != nil {
		return loginResponse{}, err
	}

	if !hashMatchesPassword(acc.PasswordHash, req.Password) {
		return loginResponse{Token: "none"}, nil
	}

	token, err := issueToken(string(acc.ID))
	if err != nil {
		return loginResponse{}, ErrInternal
	}

	return loginResponse{ID: acc.ID, Email: acc.Email, Token: token}, nil
}

func (svc *service) UpdatePassword(req updatePasswordRequest) error {
	acc, err := svc.findAccount(req.Email)
	if err != nil {
		return err
	}

	if !hashMatchesPassword(acc.PasswordHash, req.OldPassword) {
		return ErrPasswordMismatch
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return ErrInternal
	}
	acc.PasswordHash = hash

	if err := svc.accounts.Update(acc); err != nil {
		return ErrInternal
	}
	return nil
}

func (svc *service) Favourites(email string) ([]string, error) {
	acc, err := svc.findAccount(email)
	if err != nil {
		return nil, err
	}
	return acc.FavouriteLocations, nil
}

func (svc *service) AddFavourite(req favouriteRequest) error {
	acc, err := svc.findAccount(req.Email)
	if err != nil {
		return err
	}

	if acc.HasFavourite(req.LocationID) {
		return ErrDuplicateFavourite
	}
	acc.AddFavourite(req.LocationID)

	if err := svc.accounts.Update(acc); err != nil {
		return ErrInternal
	}
	return nil
}

func (svc *service) RemoveFavourite(req favouriteRequest) error {
	acc, err := svc.findAccount(req.Email)
	if err != nil {
		return err
	}

	if !acc.HasFavourite(req.LocationID) {
		return ErrFavouriteNotPresent
	}
	acc.RemoveFavourite(req.LocationID)

	if err := svc.accounts.Update(acc); err != nil {
		return ErrInternal
	}
	return nil
}

//findAccount recovers store failures into the service's named kinds:
// a missing record stays ErrNotFound, anything else becomes ErrInternal.
func (svc *service) findAccount(email string) (*Account, error) {
	acc, err := svc.accounts.FindByEmail(email)
	if err == ErrNotFound {
		return nil, err
	}
	if err != nil {
		return nil, ErrInternal
	}
	return acc, nil
}
