package accounts

import (
	"encoding/json"
	"io"
	"net/http"
)

type accountResponse struct {
	ID                 ID       `json:"id"`
	Email              string   `json:"email"`
	FavouriteLocations []string `json:"favouriteLocations"`
}

func ListAccountsHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		accs, err := svc.Accounts()
		if err != nil {
			encodeError(err, w)
			return
		}

		res := []accountResponse{}
		for _, acc := range accs {
			res = append(res, accountResponse{ID: acc.ID, Email: acc.Email, FavouriteLocations: acc.FavouriteLocations})
		}
		json.NewEncoder(w).Encode(res)
	})
}

func RegisterHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		w.Header().Set("Content-Type", "application/json")
		if err := decodeRequest(r.Body, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		acc, err := svc.Register(req)
		if err != nil {
			encodeError(err, w)
			return
		}

		w.WriteHeader(http.StatusCreated)
		res := accountResponse{ID: acc.ID, Email: acc.Email, FavouriteLocations: acc.FavouriteLocations}
		if err := json.NewEncoder(w).Encode(res); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
		}
	})
}

func LoginHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		w.Header().Set("Content-Type", "application/json")
		if err := decodeRequest(r.Body, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		res, err := svc.Login(req)
		if err != nil {
			encodeError(err, w)
			return
		}

		if res.Token == "none" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorised"})
			return
		}

		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(res); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
		}
	})
}

func UpdatePasswordHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req updatePasswordRequest
		if err := decodeRequest(r.Body, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if err := svc.UpdatePassword(req); err != nil {
			encodeError(err, w)
			return
		}

		w.WriteHeader(http.StatusOK)
	})
}

func FavouritesHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		w.Header().Set("Content-Type", "application/json")
		if err := decodeRequest(r.Body, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		favs, err := svc.Favourites(req.Email)
		if err != nil {
			encodeError(err, w)
			return
		}

		if favs == nil {
			favs = []string{}
		}
		json.NewEncoder(w).Encode(favs)
	})
}

func AddFavouriteHandler(svc Service) http.Handler {
	return favouriteHandler(func(svc Service, req favouriteRequest) error {
		return svc.AddFavourite(req)
	}, svc)
}

func RemoveFavouriteHandler(svc Service) http.Handler {
	return favouriteHandler(func(svc Service, req favouriteRequest) error {
		return svc.RemoveFavourite(req)
	}, svc)
}

func favouriteHandler(mutate func(Service, favouriteRequest) error, svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req favouriteRequest
		if err := decodeRequest(r.Body, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if err := mutate(svc, req); err != nil {
			encodeError(err, w)
			return
		}

		w.WriteHeader(http.StatusOK)
	})
}

func encodeError(err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	switch err {
	case ErrPasswordMismatch:
		w.WriteHeader(http.StatusUnauthorized)
	case ErrNotFound:
		w.WriteHeader(http.StatusNotFound)
	case ErrDuplicateFavourite, ErrFavouriteNotPresent:
		w.WriteHeader(http.StatusBadRequest)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	}); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func decodeRequest(body io.ReadCloser, v interface{}) error {
	return json.NewDecoder(body).Decode(v)
}
