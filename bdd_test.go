package accounts

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	. "github.com/smartystreets/goconvey/convey"
)

//newTestRouter mirrors the route table the api binary wires up.
func newTestRouter(repo Repository) *httprouter.Router {
	svc := NewService(repo)

	protected := func(rules []FieldRule, h http.Handler) http.Handler {
		return CORS(RequireToken(RequireAccountMatch(repo, ValidateBody(rules, h))))
	}

	router := httprouter.New()
	router.Handler(http.MethodGet, "/", ListAccountsHandler(svc))
	router.Handler(http.MethodPost, "/", ValidateBody(CredentialRules, RegisterHandler(svc)))
	router.Handler(http.MethodPost, "/login", ValidateBody(CredentialRules, LoginHandler(svc)))
	router.Handler(http.MethodPatch, "/updatePassword", protected(PasswordChangeRules, UpdatePasswordHandler(svc)))
	router.Handler(http.MethodGet, "/fav", protected(EmailRules, FavouritesHandler(svc)))
	router.Handler(http.MethodPatch, "/addfav", protected(EmailRules, AddFavouriteHandler(svc)))
	router.Handler(http.MethodPatch, "/removefav", protected(EmailRules, RemoveFavouriteHandler(svc)))
	return router
}

func do(router *httprouter.Router, method, target, body, token string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		r.Header.Set(TokenHeader, token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestRegistrationScenarios(t *testing.T) {
	Convey("Given a fresh accounts API", t, func() {
		router := newTestRouter(NewAccountRepository())

		Convey("When a valid account is registered", func() {
			w := do(router, http.MethodPost, "/", `{"email": "new@example.com", "password": "password1!"}`, "")

			Convey("Then the response is 201 with the email echoed and no password", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)

				var res map[string]interface{}
				So(json.NewDecoder(w.Body).Decode(&res), ShouldBeNil)
				So(res["email"], ShouldEqual, "new@example.com")
				So(res, ShouldNotContainKey, "password")
				So(res, ShouldNotContainKey, "passwordHash")
			})
		})

		Convey("When the email has no @", func() {
			w := do(router, http.MethodPost, "/", `{"email": "email", "password": "password1!"}`, "")

			Convey("Then validation rejects it with an errors entry keyed by email", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var res struct {
					Errors []map[string]string `json:"errors"`
				}
				So(json.NewDecoder(w.Body).Decode(&res), ShouldBeNil)
				So(res.Errors, ShouldHaveLength, 1)
				So(res.Errors[0]["email"], ShouldEqual, "Invalid email format")
			})
		})
	})
}

func TestLoginScenarios(t *testing.T) {
	Convey("Given a registered account", t, func() {
		router := newTestRouter(NewAccountRepository())
		w := do(router, http.MethodPost, "/", `{"email": "user@example.com", "password": "password1!"}`, "")
		So(w.Code, ShouldEqual, http.StatusCreated)

		Convey("When logging in with the right credentials", func() {
			w := do(router, http.MethodPost, "/login", `{"email": "user@example.com", "password": "password1!"}`, "")

			Convey("Then a non-empty token comes back with the id and email", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)

				var res loginResponse
				So(json.NewDecoder(w.Body).Decode(&res), ShouldBeNil)
				So(res.Token, ShouldNotBeEmpty)
				So(res.Token, ShouldNotEqual, "none")
				So(res.Email, ShouldEqual, "user@example.com")
				So(IsValidID(string(res.ID)), ShouldBeTrue)
			})
		})

		Convey("When logging in with the wrong password", func() {
			w := do(router, http.MethodPost, "/login", `{"email": "user@example.com", "password": "wrong2@pass"}`, "")

			So(w.Code, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("When logging in with an unregistered email", func() {
			w := do(router, http.MethodPost, "/login", `{"email": "no@email.com", "password": "password1!"}`, "")

			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestProtectedRouteScenarios(t *testing.T) {
	Convey("Given a registered, logged-in account", t, func() {
		router := newTestRouter(NewAccountRepository())
		do(router, http.MethodPost, "/", `{"email": "user@example.com", "password": "password1!"}`, "")

		w := do(router, http.MethodPost, "/login", `{"email": "user@example.com", "password": "password1!"}`, "")
		var login loginResponse
		So(json.NewDecoder(w.Body).Decode(&login), ShouldBeNil)

		body := `{"email": "user@example.com"}`

		Convey("When favourites are requested without a token", func() {
			w := do(router, http.MethodGet, "/fav", body, "")
			So(w.Code, ShouldEqual, http.StatusForbidden)
		})

		Convey("When favourites are requested with a garbage token", func() {
			w := do(router, http.MethodGet, "/fav", body, "not.a.token")
			So(w.Code, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("When the token belongs to a different account", func() {
			other, err := issueToken("otherid")
			So(err, ShouldBeNil)

			w := do(router, http.MethodGet, "/fav", body, other)
			So(w.Code, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("When favourites are added, listed and removed with a valid token", func() {
			w := do(router, http.MethodPatch, "/addfav", `{"email": "user@example.com", "locationId": "loc1"}`, login.Token)
			So(w.Code, ShouldEqual, http.StatusOK)

			Convey("Then adding the same location again is rejected", func() {
				w := do(router, http.MethodPatch, "/addfav", `{"email": "user@example.com", "locationId": "loc1"}`, login.Token)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})

			Convey("And the list contains exactly one entry", func() {
				w := do(router, http.MethodGet, "/fav", body, login.Token)
				So(w.Code, ShouldEqual, http.StatusOK)

				var favs []string
				So(json.NewDecoder(w.Body).Decode(&favs), ShouldBeNil)
				So(favs, ShouldResemble, []string{"loc1"})
			})

			Convey("And removing an absent location is rejected", func() {
				w := do(router, http.MethodPatch, "/removefav", `{"email": "user@example.com", "locationId": "loc9"}`, login.Token)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})

			Convey("And removing it empties the list", func() {
				w := do(router, http.MethodPatch, "/removefav", `{"email": "user@example.com", "locationId": "loc1"}`, login.Token)
				So(w.Code, ShouldEqual, http.StatusOK)

				w = do(router, http.MethodGet, "/fav", body, login.Token)
				var favs []string
				So(json.NewDecoder(w.Body).Decode(&favs), ShouldBeNil)
				So(favs, ShouldBeEmpty)
			})
		})

		Convey("When the password is updated with the old one", func() {
			req := `{"email": "user@example.com", "oldPassword": "password1!", "newPassword": "password2!"}`
			w := do(router, http.MethodPatch, "/updatePassword", req, login.Token)
			So(w.Code, ShouldEqual, http.StatusOK)

			Convey("Then the new password logs in and the old one no longer does", func() {
				w := do(router, http.MethodPost, "/login", `{"email": "user@example.com", "password": "password2!"}`, "")
				So(w.Code, ShouldEqual, http.StatusCreated)

				w = do(router, http.MethodPost, "/login", `{"email": "user@example.com", "password": "password1!"}`, "")
				So(w.Code, ShouldEqual, http.StatusUnauthorized)
			})
		})

		Convey("When the new password fails the complexity rules", func() {
			req := `{"email": "user@example.com", "oldPassword": "password1!", "newPassword": "password"}`
			w := do(router, http.MethodPatch, "/updatePassword", req, login.Token)

			So(w.Code, ShouldEqual, http.StatusBadRequest)

			var res struct {
				Errors []map[string]string `json:"errors"`
			}
			So(json.NewDecoder(w.Body).Decode(&res), ShouldBeNil)
			So(res.Errors, ShouldResemble, []map[string]string{
				{"newPassword": "Password must contain a number"},
				{"newPassword": "Password must contain a special character"},
			})
		})
	})
}
