package store_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/garasiku/garasiku-server/internal/models"
	"github.com/garasiku/garasiku-server/internal/store"
	"github.com/garasiku/garasiku-server/internal/store/migrations"
	srvErrors "github.com/garasiku/garasiku-server/pkg/errors"
)

var _ = Describe("UserStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	It("should return UserNotFoundError for an unknown email", func() {
		_, err := s.User().GetByEmail(ctx, "nobody@example.com")

		Expect(err).To(HaveOccurred())
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})

	It("should create a user and find it by email", func() {
		created, err := s.User().Create(ctx, &models.User{
			Email: "admin@example.com",
			Name:  "Admin",
		})
		Expect(err).NotTo(HaveOccurred())

		found, err := s.User().GetByEmail(ctx, "admin@example.com")

		Expect(err).NotTo(HaveOccurred())
		Expect(found.ID).To(Equal(created.ID))
		Expect(found.Name).To(Equal("Admin"))
	})

	It("should reject a duplicate email", func() {
		_, err := s.User().Create(ctx, &models.User{Email: "admin@example.com"})
		Expect(err).NotTo(HaveOccurred())

		_, err = s.User().Create(ctx, &models.User{Email: "admin@example.com"})
		Expect(err).To(HaveOccurred())
	})
})
