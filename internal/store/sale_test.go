package store_test

import (
	"context"
	"database/sql"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/garasiku/garasiku-server/internal/models"
	"github.com/garasiku/garasiku-server/internal/store"
	"github.com/garasiku/garasiku-server/internal/store/migrations"
	srvErrors "github.com/garasiku/garasiku-server/pkg/errors"
)

var _ = Describe("SaleStore", func() {
	var (
		ctx   context.Context
		s     *store.Store
		db    *sql.DB
		carID string
	)

	seedSale := func(customer string, price int64, status models.SaleStatus) *models.Sale {
		created, err := s.Sale().Create(ctx, &models.Sale{
			CustomerName:  customer,
			CarID:         carID,
			Price:         price,
			PaymentMethod: "cash",
			Status:        status,
		})
		Expect(err).NotTo(HaveOccurred())
		time.Sleep(2 * time.Millisecond)
		return created
	}

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)

		brand, err := s.Brand().Create(ctx, "Toyota")
		Expect(err).NotTo(HaveOccurred())
		bodyType, err := s.BodyType().Create(ctx, "MPV")
		Expect(err).NotTo(HaveOccurred())
		m, err := s.Model().Create(ctx, &models.Model{
			Name:       "Avanza",
			BrandID:    brand.ID,
			BodyTypeID: bodyType.ID,
		})
		Expect(err).NotTo(HaveOccurred())
		car, err := s.Car().Create(ctx, &models.Car{
			ModelID:      m.ID,
			Condition:    90,
			Transmission: models.TransmissionAutomatic,
			Year:         2020,
			SellPrice:    150,
		})
		Expect(err).NotTo(HaveOccurred())
		carID = car.ID
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Context("Summary", func() {
		// Given a completed sale of 100, a pending sale of 1 and a cancelled
		// sale of 1
		// When we aggregate the summary
		// Then revenue counts the completed sale only
		It("should sum revenue over completed sales only", func() {
			seedSale("Andi", 100, models.SaleStatusCompleted)
			seedSale("Budi", 1, models.SaleStatusPending)
			seedSale("Citra", 1, models.SaleStatusCancelled)

			summary, err := s.Sale().Summary(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(summary.TotalSales).To(Equal(3))
			Expect(summary.CompletedSales).To(Equal(1))
			Expect(summary.PendingSales).To(Equal(1))
			Expect(summary.TotalRevenue).To(Equal(int64(100)))
		})

		It("should return zeros for an empty table", func() {
			summary, err := s.Sale().Summary(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(summary.TotalSales).To(Equal(0))
			Expect(summary.TotalRevenue).To(Equal(int64(0)))
		})
	})

	Context("List", func() {
		It("should match search on customer name case-insensitively", func() {
			seedSale("Andi Wijaya", 100, models.SaleStatusCompleted)
			seedSale("Budi", 200, models.SaleStatusPending)

			sales, err := s.Sale().List(ctx, store.SaleBySearch("wija"))

			Expect(err).NotTo(HaveOccurred())
			Expect(sales).To(HaveLen(1))
			Expect(sales[0].CustomerName).To(Equal("Andi Wijaya"))
		})

		It("should filter by status", func() {
			seedSale("Andi", 100, models.SaleStatusCompleted)
			seedSale("Budi", 200, models.SaleStatusPending)

			sales, err := s.Sale().List(ctx, store.SaleByStatus(models.SaleStatusPending))

			Expect(err).NotTo(HaveOccurred())
			Expect(sales).To(HaveLen(1))
			Expect(sales[0].CustomerName).To(Equal("Budi"))
		})

		It("should order newest first with the default sort", func() {
			first := seedSale("Andi", 100, models.SaleStatusCompleted)
			second := seedSale("Budi", 200, models.SaleStatusPending)

			sales, err := s.Sale().List(ctx, store.SaleWithDefaultSort())

			Expect(err).NotTo(HaveOccurred())
			Expect(sales).To(HaveLen(2))
			Expect(sales[0].ID).To(Equal(second.ID))
			Expect(sales[1].ID).To(Equal(first.ID))
		})

		It("should expand the sold car's model and brand", func() {
			created := seedSale("Andi", 100, models.SaleStatusCompleted)

			sale, err := s.Sale().Get(ctx, created.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(sale.Car).NotTo(BeNil())
			Expect(sale.Car.Model.Name).To(Equal("Avanza"))
			Expect(sale.Car.Model.Brand.Name).To(Equal("Toyota"))
		})
	})

	Context("Update", func() {
		It("should persist field changes", func() {
			created := seedSale("Andi", 100, models.SaleStatusPending)

			created.Status = models.SaleStatusCompleted
			created.Price = 120
			_, err := s.Sale().Update(ctx, created)
			Expect(err).NotTo(HaveOccurred())

			sale, err := s.Sale().Get(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(sale.Status).To(Equal(models.SaleStatusCompleted))
			Expect(sale.Price).To(Equal(int64(120)))
		})

		It("should return SaleNotFoundError for an unknown id", func() {
			_, err := s.Sale().Update(ctx, &models.Sale{ID: "missing", Status: models.SaleStatusPending})

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})

	Context("Delete", func() {
		It("should remove the sale", func() {
			created := seedSale("Andi", 100, models.SaleStatusPending)

			err := s.Sale().Delete(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = s.Sale().Get(ctx, created.ID)
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		It("should return SaleNotFoundError for an unknown id", func() {
			err := s.Sale().Delete(ctx, "missing")

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})
})
