package auth_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"meetapp.app/api/internal/auth"
)

var _ = Describe("Tokens", func() {
	var (
		tokens *auth.Tokens
		now    time.Time
	)

	BeforeEach(func() {
		now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		tokens = auth.NewTokens("test-secret", time.Hour).WithClock(func() time.Time { return now })
	})

	It("round-trips the user id", func() {
		signed, err := tokens.Generate(42)
		Expect(err).NotTo(HaveOccurred())

		userID, err := tokens.Parse(signed)
		Expect(err).NotTo(HaveOccurred())
		Expect(userID).To(Equal(int64(42)))
	})

	It("rejects a token signed with another secret", func() {
		other := auth.NewTokens("other-secret", time.Hour).WithClock(func() time.Time { return now })
		signed, err := other.Generate(42)
		Expect(err).NotTo(HaveOccurred())

		_, err = tokens.Parse(signed)
		Expect(err).To(MatchError(auth.ErrInvalidToken))
	})

	It("reports expiry separately", func() {
		signed, err := tokens.Generate(42)
		Expect(err).NotTo(HaveOccurred())

		later := tokens.WithClock(func() time.Time { return now.Add(2 * time.Hour) })
		_, err = later.Parse(signed)
		Expect(err).To(MatchError(auth.ErrExpiredToken))
	})

	It("rejects garbage", func() {
		_, err := tokens.Parse("not-a-jwt")
		Expect(err).To(MatchError(auth.ErrInvalidToken))
	})
})

var _ = Describe("Passwords", func() {
	It("matches the original password only", func() {
		hash, err := auth.HashPassword("123456")
		Expect(err).NotTo(HaveOccurred())
		Expect(hash).NotTo(Equal("123456"))

		ok, err := auth.CheckPassword(hash, "123456")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		ok, err = auth.CheckPassword(hash, "654321")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("errors on a malformed hash", func() {
		_, err := auth.CheckPassword("plain", "123456")
		Expect(err).To(HaveOccurred())
	})
})
