package accounts

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
)

const TokenHeader = "x-access-token"

type contextKey string

const subjectIDKey = contextKey("subjectID")

//peekBody reads the request body and puts it back, so middleware can
// inspect it without starving downstream readers.
func peekBody(r *http.Request) ([]byte, error) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	r.Body.Close()
	r.Body = ioutil.NopCloser(bytes.NewReader(body))
	return body, nil
}

func subjectID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(subjectIDKey).(string)
	return id, ok
}

//RequireToken verifies the bearer token carried in the x-access-token
// header. A missing token is a 403, a bad or expired one a 401. The
// account id the token was issued for is bound to the request context.
func RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.Header.Get(TokenHeader)
		w.Header().Set("Content-Type", "application/json")

		if tokenString == "" {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"message": "No token provided"})
			return
		}

		id, err := parseToken(tokenString)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorised"})
			return
		}

		ctx := context.WithValue(r.Context(), subjectIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

//RequireAccountMatch confirms the token subject is the account named by
// the email in the request body, so a valid token for one account cannot
// drive mutations against another.
func RequireAccountMatch(accounts Repository, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := peekBody(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var req struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		acc, err := accounts.FindByEmail(req.Email)
		switch {
		case err == ErrNotFound:
			w.WriteHeader(http.StatusNotFound)
			return
		case err != nil:
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		id, ok := subjectID(r.Context())
		if !ok || string(acc.ID) != id {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorised"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

//CORS answers preflight requests for protected routes and allows the
// custom token header alongside the usual ones.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", TokenHeader+", Origin, Content-Type, Accept")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
