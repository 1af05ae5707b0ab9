package handler_test

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"meetapp.app/api/internal/http/handler"
	"meetapp.app/api/internal/model"
	"meetapp.app/api/internal/service"
)

var _ = Describe("UserHandler", func() {
	var (
		router *gin.Engine
		svc    *mockUserService
	)

	BeforeEach(func() {
		router = newTestRouter()
		svc = &mockUserService{}
		h := handler.NewUserHandler(svc)
		router.POST("/users", h.Register)
		router.PUT("/users", asUser(7), h.Update)
	})

	Describe("Register", func() {
		It("returns the user without the password hash", func() {
			svc.registerFn = func(_ context.Context, params service.RegisterParams) (*model.User, error) {
				Expect(params.Password).To(Equal("secret1"))
				return &model.User{ID: 1234567890123, Name: params.Name, Email: params.Email, PasswordHash: "hash"}, nil
			}

			w := doJSON(router, http.MethodPost, "/users", map[string]string{
				"name": "Ana", "email": "ana@example.com", "password": "secret1",
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decodeBody(w)
			Expect(resp["id"]).To(Equal("1234567890123"))
			Expect(resp["email"]).To(Equal("ana@example.com"))
			Expect(resp).NotTo(HaveKey("password_hash"))
		})

		It("returns 400 on a malformed body", func() {
			w := doJSON(router, http.MethodPost, "/users", `{`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeBody(w)["error"]).To(Equal("Invalid or missing fields"))
		})

		It("returns the validation message", func() {
			svc.registerFn = func(context.Context, service.RegisterParams) (*model.User, error) {
				return nil, service.NewValidationError("Invalid or missing fields")
			}

			w := doJSON(router, http.MethodPost, "/users", map[string]string{"name": "Ana"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeBody(w)["error"]).To(Equal("Invalid or missing fields"))
		})

		It("returns 400 when the email is taken", func() {
			svc.registerFn = func(context.Context, service.RegisterParams) (*model.User, error) {
				return nil, service.ErrEmailTaken
			}

			w := doJSON(router, http.MethodPost, "/users", map[string]string{
				"name": "Ana", "email": "ana@example.com", "password": "secret1",
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeBody(w)["error"]).To(Equal("User already exists"))
		})

		It("hides unexpected errors behind a 500", func() {
			svc.registerFn = func(context.Context, service.RegisterParams) (*model.User, error) {
				return nil, errors.New("connection refused")
			}

			w := doJSON(router, http.MethodPost, "/users", map[string]string{
				"name": "Ana", "email": "ana@example.com", "password": "secret1",
			})

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(decodeBody(w)["error"]).To(Equal("internal server error"))
		})
	})

	Describe("Update", func() {
		It("updates the authenticated caller", func() {
			var gotID int64
			svc.updateFn = func(_ context.Context, userID int64, update service.ProfileUpdate) (*model.User, error) {
				gotID = userID
				Expect(update.OldPassword).NotTo(BeNil())
				Expect(*update.OldPassword).To(Equal("secret1"))
				Expect(update.Email).To(BeNil())
				return &model.User{ID: userID, Name: "Ana", Email: "ana@example.com"}, nil
			}

			w := doJSON(router, http.MethodPut, "/users", map[string]string{
				"oldPassword": "secret1", "password": "secret2", "confirmPassword": "secret2",
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gotID).To(Equal(int64(7)))
		})

		It("returns 401 when the old password is wrong", func() {
			svc.updateFn = func(context.Context, int64, service.ProfileUpdate) (*model.User, error) {
				return nil, service.ErrPasswordMismatch
			}

			w := doJSON(router, http.MethodPut, "/users", map[string]string{
				"oldPassword": "nope", "password": "secret2", "confirmPassword": "secret2",
			})

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(decodeBody(w)["error"]).To(Equal("Password does not match"))
		})
	})
})
