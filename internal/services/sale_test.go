package services_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/garasiku/garasiku-server/internal/files"
	"github.com/garasiku/garasiku-server/internal/models"
	"github.com/garasiku/garasiku-server/internal/services"
	"github.com/garasiku/garasiku-server/internal/store"
	"github.com/garasiku/garasiku-server/internal/store/migrations"
	srvErrors "github.com/garasiku/garasiku-server/pkg/errors"
)

var _ = Describe("SaleService", func() {
	var (
		ctx     context.Context
		s       *store.Store
		db      *sql.DB
		hub     *services.Hub
		carSrv  *services.CarService
		saleSrv *services.SaleService
		carID   string
	)

	saleInput := func() services.SaleInput {
		return services.SaleInput{
			CustomerName:  "Andi",
			CarID:         carID,
			Price:         150,
			PaymentMethod: "cash",
		}
	}

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)

		images, err := files.NewStore(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())

		hub = services.NewHub()
		resolver := services.NewReferenceResolver(s)
		carSrv = services.NewCarService(s, resolver, images, hub)
		saleSrv = services.NewSaleService(s, hub)

		car, err := carSrv.Create(ctx, services.CarInput{
			Brand:        services.Ref{Name: "Toyota"},
			BodyType:     services.Ref{Name: "MPV"},
			Model:        services.ModelSpec{Ref: services.Ref{Name: "Avanza"}},
			Condition:    90,
			Transmission: models.TransmissionAutomatic,
			SellPrice:    150,
			Year:         2020,
		}, nil)
		Expect(err).NotTo(HaveOccurred())
		carID = car.ID
	})

	AfterEach(func() {
		hub.Close()
		if db != nil {
			db.Close()
		}
	})

	Context("Create", func() {
		It("should reject a missing customer name", func() {
			input := saleInput()
			input.CustomerName = ""

			_, err := saleSrv.Create(ctx, input)

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsValidationError(err)).To(BeTrue())
		})

		It("should reject an unknown car", func() {
			input := saleInput()
			input.CarID = "missing"

			_, err := saleSrv.Create(ctx, input)

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		// Given an available car
		// When a sale is recorded against it
		// Then the sale defaults to pending and the car is marked sold
		It("should default to pending and mark the car sold", func() {
			sale, err := saleSrv.Create(ctx, saleInput())

			Expect(err).NotTo(HaveOccurred())
			Expect(sale.Status).To(Equal(models.SaleStatusPending))

			car, err := carSrv.Get(ctx, carID)
			Expect(err).NotTo(HaveOccurred())
			Expect(car.Sold).To(BeTrue())
		})

		It("should publish events on both collections", func() {
			saleEvents, unsubSales := hub.Subscribe("sales")
			defer unsubSales()
			carEvents, unsubCars := hub.Subscribe("cars")
			defer unsubCars()

			_, err := saleSrv.Create(ctx, saleInput())
			Expect(err).NotTo(HaveOccurred())

			Eventually(saleEvents).Should(Receive())
			Eventually(carEvents).Should(Receive())
		})
	})

	Context("Update", func() {
		It("should persist edited fields", func() {
			sale, err := saleSrv.Create(ctx, saleInput())
			Expect(err).NotTo(HaveOccurred())

			input := saleInput()
			input.CustomerName = "Budi"
			input.Price = 175

			updated, err := saleSrv.Update(ctx, sale.ID, input)

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.CustomerName).To(Equal("Budi"))
			Expect(updated.Price).To(Equal(int64(175)))
		})

		// Given a recorded sale
		// When an update names a different car
		// Then the update is rejected and the sale keeps its car
		It("should reject moving the sale to another car", func() {
			sale, err := saleSrv.Create(ctx, saleInput())
			Expect(err).NotTo(HaveOccurred())

			other, err := carSrv.Create(ctx, services.CarInput{
				Brand:        services.Ref{Name: "Honda"},
				BodyType:     services.Ref{Name: "Hatchback"},
				Model:        services.ModelSpec{Ref: services.Ref{Name: "Jazz"}},
				Condition:    85,
				Transmission: models.TransmissionManual,
				SellPrice:    120,
				Year:         2019,
			}, nil)
			Expect(err).NotTo(HaveOccurred())

			input := saleInput()
			input.CarID = other.ID

			_, err = saleSrv.Update(ctx, sale.ID, input)

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsValidationError(err)).To(BeTrue())

			stored, err := saleSrv.Get(ctx, sale.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.CarID).To(Equal(carID))
		})
	})

	Context("Cancel", func() {
		// Given a recorded sale whose car is marked sold
		// When the sale is cancelled
		// Then the car returns to the available pool
		It("should return the car to the available pool", func() {
			sale, err := saleSrv.Create(ctx, saleInput())
			Expect(err).NotTo(HaveOccurred())

			cancelled, err := saleSrv.Cancel(ctx, sale.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(cancelled.Status).To(Equal(models.SaleStatusCancelled))

			car, err := carSrv.Get(ctx, carID)
			Expect(err).NotTo(HaveOccurred())
			Expect(car.Sold).To(BeFalse())
		})

		It("should return SaleNotFoundError for an unknown id", func() {
			_, err := saleSrv.Cancel(ctx, "missing")

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})

	Context("Summary", func() {
		// Given one completed and one pending sale
		// When the summary is aggregated
		// Then the revenue counts the completed sale only
		It("should count revenue from completed sales only", func() {
			input := saleInput()
			input.Status = models.SaleStatusCompleted
			input.Price = 100
			_, err := saleSrv.Create(ctx, input)
			Expect(err).NotTo(HaveOccurred())

			input = saleInput()
			input.Price = 999
			_, err = saleSrv.Create(ctx, input)
			Expect(err).NotTo(HaveOccurred())

			summary, err := saleSrv.Summary(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(summary.TotalSales).To(Equal(2))
			Expect(summary.CompletedSales).To(Equal(1))
			Expect(summary.PendingSales).To(Equal(1))
			Expect(summary.TotalRevenue).To(Equal(int64(100)))
		})
	})

	Context("AvailableCars", func() {
		It("should exclude sold cars", func() {
			_, err := saleSrv.Create(ctx, saleInput())
			Expect(err).NotTo(HaveOccurred())

			available, err := saleSrv.AvailableCars(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(available).To(BeEmpty())
		})
	})

	Context("Export", func() {
		It("should render a workbook with a header and one row per sale", func() {
			_, err := saleSrv.Create(ctx, saleInput())
			Expect(err).NotTo(HaveOccurred())

			f, err := saleSrv.Export(ctx, services.SaleListParams{})

			Expect(err).NotTo(HaveOccurred())
			rows, err := f.GetRows("Sales")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0][0]).To(Equal("ID"))
			Expect(rows[1][2]).To(Equal("Andi"))
		})
	})
})
