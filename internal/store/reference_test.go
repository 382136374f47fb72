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

var _ = Describe("ReferenceStores", func() {
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

	Context("BrandStore", func() {
		It("should return BrandNotFoundError for an unknown id", func() {
			_, err := s.Brand().Get(ctx, "missing")

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		It("should create and list brands", func() {
			_, err := s.Brand().Create(ctx, "Toyota")
			Expect(err).NotTo(HaveOccurred())
			_, err = s.Brand().Create(ctx, "Honda")
			Expect(err).NotTo(HaveOccurred())

			brands, err := s.Brand().List(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(brands).To(HaveLen(2))
		})

		// Given a brand named "Toyota"
		// When we look it up with a different casing
		// Then the lookup misses, name matching is exact
		It("should match names case-sensitively", func() {
			_, err := s.Brand().Create(ctx, "Toyota")
			Expect(err).NotTo(HaveOccurred())

			found, err := s.Brand().GetByName(ctx, "Toyota")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Name).To(Equal("Toyota"))

			_, err = s.Brand().GetByName(ctx, "toyota")
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})

	Context("BodyTypeStore", func() {
		It("should find a body type by exact name", func() {
			created, err := s.BodyType().Create(ctx, "SUV")
			Expect(err).NotTo(HaveOccurred())

			found, err := s.BodyType().GetByName(ctx, "SUV")

			Expect(err).NotTo(HaveOccurred())
			Expect(found.ID).To(Equal(created.ID))
		})

		It("should return BodyTypeNotFoundError for an unknown name", func() {
			_, err := s.BodyType().GetByName(ctx, "Roadster")

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})

	Context("ModelStore", func() {
		var (
			toyotaID string
			hondaID  string
			mpvID    string
		)

		BeforeEach(func() {
			toyota, err := s.Brand().Create(ctx, "Toyota")
			Expect(err).NotTo(HaveOccurred())
			honda, err := s.Brand().Create(ctx, "Honda")
			Expect(err).NotTo(HaveOccurred())
			mpv, err := s.BodyType().Create(ctx, "MPV")
			Expect(err).NotTo(HaveOccurred())
			toyotaID, hondaID, mpvID = toyota.ID, honda.ID, mpv.ID
		})

		It("should expand brand and body type", func() {
			created, err := s.Model().Create(ctx, &models.Model{
				Name:       "Avanza",
				BrandID:    toyotaID,
				BodyTypeID: mpvID,
				Seats:      7,
				CC:         1500,
				Bags:       3,
			})
			Expect(err).NotTo(HaveOccurred())

			m, err := s.Model().Get(ctx, created.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(m.Brand.Name).To(Equal("Toyota"))
			Expect(m.BodyType.Name).To(Equal("MPV"))
			Expect(m.Seats).To(Equal(7))
		})

		// Given models under two brands
		// When we list restricted to one brand
		// Then only that brand's models come back, sorted by name
		It("should list models restricted to a brand", func() {
			_, err := s.Model().Create(ctx, &models.Model{Name: "Avanza", BrandID: toyotaID, BodyTypeID: mpvID})
			Expect(err).NotTo(HaveOccurred())
			_, err = s.Model().Create(ctx, &models.Model{Name: "Alphard", BrandID: toyotaID, BodyTypeID: mpvID})
			Expect(err).NotTo(HaveOccurred())
			_, err = s.Model().Create(ctx, &models.Model{Name: "Mobilio", BrandID: hondaID, BodyTypeID: mpvID})
			Expect(err).NotTo(HaveOccurred())

			list, err := s.Model().List(ctx, toyotaID)

			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			Expect(list[0].Name).To(Equal("Alphard"))
			Expect(list[1].Name).To(Equal("Avanza"))
		})

		It("should list all models when no brand is given", func() {
			_, err := s.Model().Create(ctx, &models.Model{Name: "Avanza", BrandID: toyotaID, BodyTypeID: mpvID})
			Expect(err).NotTo(HaveOccurred())
			_, err = s.Model().Create(ctx, &models.Model{Name: "Mobilio", BrandID: hondaID, BodyTypeID: mpvID})
			Expect(err).NotTo(HaveOccurred())

			list, err := s.Model().List(ctx, "")

			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
		})

		It("should return ModelNotFoundError for an unknown name", func() {
			_, err := s.Model().GetByName(ctx, "Supra")

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})
})
