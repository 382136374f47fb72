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

var _ = Describe("CarStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	// seedModel creates brand, body type and model in one go and returns the
	// model id.
	seedModel := func(brandName, bodyTypeName, modelName string) string {
		brand, err := s.Brand().Create(ctx, brandName)
		Expect(err).NotTo(HaveOccurred())
		bodyType, err := s.BodyType().Create(ctx, bodyTypeName)
		Expect(err).NotTo(HaveOccurred())
		m, err := s.Model().Create(ctx, &models.Model{
			Name:       modelName,
			BrandID:    brand.ID,
			BodyTypeID: bodyType.ID,
			Seats:      5,
		})
		Expect(err).NotTo(HaveOccurred())
		return m.ID
	}

	seedCar := func(modelID string, transmission models.Transmission, sellPrice int64, year int, sold bool) *models.Car {
		created, err := s.Car().Create(ctx, &models.Car{
			ModelID:      modelID,
			Condition:    90,
			Transmission: transmission,
			Mileage:      10000,
			BuyPrice:     sellPrice - 10,
			SellPrice:    sellPrice,
			Year:         year,
			Sold:         sold,
		})
		Expect(err).NotTo(HaveOccurred())
		// Keep created_at strictly increasing for the ordering specs.
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
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Context("List", func() {
		// Given cars under two brands
		// When we list without any option
		// Then every car is returned
		It("should return all cars without filters", func() {
			avanzaID := seedModel("Toyota", "MPV", "Avanza")
			jazzID := seedModel("Honda", "Hatchback", "Jazz")
			seedCar(avanzaID, models.TransmissionAutomatic, 150, 2020, false)
			seedCar(jazzID, models.TransmissionManual, 200, 2021, false)

			cars, err := s.Car().List(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(cars).To(HaveLen(2))
		})

		// Given a car whose model is "Avanza"
		// When we search for "van" in mixed case
		// Then the car matches by model name substring
		It("should match search on model name case-insensitively", func() {
			avanzaID := seedModel("Toyota", "MPV", "Avanza")
			jazzID := seedModel("Honda", "Hatchback", "Jazz")
			seedCar(avanzaID, models.TransmissionAutomatic, 150, 2020, false)
			seedCar(jazzID, models.TransmissionManual, 200, 2021, false)

			cars, err := s.Car().List(ctx, store.BySearch("VaN"))

			Expect(err).NotTo(HaveOccurred())
			Expect(cars).To(HaveLen(1))
			Expect(cars[0].Model.Name).To(Equal("Avanza"))
		})

		// Given cars under the Toyota and Honda brands
		// When we search for "toyo"
		// Then the car matches by brand name
		It("should match search on brand name", func() {
			avanzaID := seedModel("Toyota", "MPV", "Avanza")
			jazzID := seedModel("Honda", "Hatchback", "Jazz")
			seedCar(avanzaID, models.TransmissionAutomatic, 150, 2020, false)
			seedCar(jazzID, models.TransmissionManual, 200, 2021, false)

			cars, err := s.Car().List(ctx, store.BySearch("toyo"))

			Expect(err).NotTo(HaveOccurred())
			Expect(cars).To(HaveLen(1))
			Expect(cars[0].BrandName()).To(Equal("Toyota"))
		})

		// Given a search that matches one brand and a transmission filter
		// that excludes its only car
		// When both options are applied
		// Then no car is returned, filters combine with AND
		It("should combine filters with AND", func() {
			avanzaID := seedModel("Toyota", "MPV", "Avanza")
			seedCar(avanzaID, models.TransmissionAutomatic, 150, 2020, false)

			cars, err := s.Car().List(ctx,
				store.BySearch("Toyota"),
				store.ByTransmission(models.TransmissionManual),
			)

			Expect(err).NotTo(HaveOccurred())
			Expect(cars).To(BeEmpty())
		})

		It("should filter by brand id", func() {
			avanzaID := seedModel("Toyota", "MPV", "Avanza")
			jazzID := seedModel("Honda", "Hatchback", "Jazz")
			avanza := seedCar(avanzaID, models.TransmissionAutomatic, 150, 2020, false)
			seedCar(jazzID, models.TransmissionManual, 200, 2021, false)

			toyota, err := s.Brand().GetByName(ctx, "Toyota")
			Expect(err).NotTo(HaveOccurred())

			cars, err := s.Car().List(ctx, store.ByBrand(toyota.ID))

			Expect(err).NotTo(HaveOccurred())
			Expect(cars).To(HaveLen(1))
			Expect(cars[0].ID).To(Equal(avanza.ID))
		})

		It("should filter by body type id", func() {
			avanzaID := seedModel("Toyota", "MPV", "Avanza")
			jazzID := seedModel("Honda", "Hatchback", "Jazz")
			seedCar(avanzaID, models.TransmissionAutomatic, 150, 2020, false)
			jazz := seedCar(jazzID, models.TransmissionManual, 200, 2021, false)

			hatchback, err := s.BodyType().GetByName(ctx, "Hatchback")
			Expect(err).NotTo(HaveOccurred())

			cars, err := s.Car().List(ctx, store.ByBodyType(hatchback.ID))

			Expect(err).NotTo(HaveOccurred())
			Expect(cars).To(HaveLen(1))
			Expect(cars[0].ID).To(Equal(jazz.ID))
		})

		It("should filter by transmission", func() {
			avanzaID := seedModel("Toyota", "MPV", "Avanza")
			seedCar(avanzaID, models.TransmissionAutomatic, 150, 2020, false)
			manual := seedCar(avanzaID, models.TransmissionManual, 160, 2019, false)

			cars, err := s.Car().List(ctx, store.ByTransmission(models.TransmissionManual))

			Expect(err).NotTo(HaveOccurred())
			Expect(cars).To(HaveLen(1))
			Expect(cars[0].ID).To(Equal(manual.ID))
		})

		// Given cars priced 100, 200 and 300
		// When we apply the single-bound price option at 200
		// Then the bound is an inclusive upper limit
		It("should treat a lone price bound as an inclusive maximum", func() {
			avanzaID := seedModel("Toyota", "MPV", "Avanza")
			seedCar(avanzaID, models.TransmissionAutomatic, 100, 2020, false)
			seedCar(avanzaID, models.TransmissionAutomatic, 200, 2020, false)
			seedCar(avanzaID, models.TransmissionAutomatic, 300, 2020, false)

			cars, err := s.Car().List(ctx, store.ByMaxSellPrice(200))

			Expect(err).NotTo(HaveOccurred())
			Expect(cars).To(HaveLen(2))
			for _, c := range cars {
				Expect(c.SellPrice).To(BeNumerically("<=", 200))
			}
		})

		// Given cars priced 100, 200 and 300
		// When we apply the range [150, 300]
		// Then both bounds are inclusive
		It("should treat a price range as a closed interval", func() {
			avanzaID := seedModel("Toyota", "MPV", "Avanza")
			seedCar(avanzaID, models.TransmissionAutomatic, 100, 2020, false)
			seedCar(avanzaID, models.TransmissionAutomatic, 200, 2020, false)
			seedCar(avanzaID, models.TransmissionAutomatic, 300, 2020, false)

			cars, err := s.Car().List(ctx, store.BySellPriceRange(150, 300))

			Expect(err).NotTo(HaveOccurred())
			Expect(cars).To(HaveLen(2))
			for _, c := range cars {
				Expect(c.SellPrice).To(BeNumerically(">=", 150))
				Expect(c.SellPrice).To(BeNumerically("<=", 300))
			}
		})

		It("should keep only unsold cars with the available option", func() {
			avanzaID := seedModel("Toyota", "MPV", "Avanza")
			available := seedCar(avanzaID, models.TransmissionAutomatic, 150, 2020, false)
			seedCar(avanzaID, models.TransmissionAutomatic, 160, 2020, true)

			cars, err := s.Car().List(ctx, store.ByAvailable())

			Expect(err).NotTo(HaveOccurred())
			Expect(cars).To(HaveLen(1))
			Expect(cars[0].ID).To(Equal(available.ID))
		})

		// Given three cars created in sequence
		// When we list with the default sort
		// Then the newest car comes first
		It("should order newest first with the default sort", func() {
			avanzaID := seedModel("Toyota", "MPV", "Avanza")
			first := seedCar(avanzaID, models.TransmissionAutomatic, 100, 2018, false)
			second := seedCar(avanzaID, models.TransmissionAutomatic, 200, 2019, false)
			third := seedCar(avanzaID, models.TransmissionAutomatic, 300, 2020, false)

			cars, err := s.Car().List(ctx, store.WithDefaultSort())

			Expect(err).NotTo(HaveOccurred())
			Expect(cars).To(HaveLen(3))
			Expect(cars[0].ID).To(Equal(third.ID))
			Expect(cars[1].ID).To(Equal(second.ID))
			Expect(cars[2].ID).To(Equal(first.ID))
		})

		It("should order by a whitelisted field", func() {
			avanzaID := seedModel("Toyota", "MPV", "Avanza")
			seedCar(avanzaID, models.TransmissionAutomatic, 300, 2020, false)
			seedCar(avanzaID, models.TransmissionAutomatic, 100, 2018, false)
			seedCar(avanzaID, models.TransmissionAutomatic, 200, 2019, false)

			cars, err := s.Car().List(ctx, store.WithSort([]store.SortParam{{Field: "sellPrice"}}))

			Expect(err).NotTo(HaveOccurred())
			Expect(cars).To(HaveLen(3))
			Expect(cars[0].SellPrice).To(Equal(int64(100)))
			Expect(cars[1].SellPrice).To(Equal(int64(200)))
			Expect(cars[2].SellPrice).To(Equal(int64(300)))
		})

		// Given a sort request naming an unknown field
		// When we list
		// Then the field is ignored instead of reaching the SQL
		It("should ignore sort fields outside the whitelist", func() {
			avanzaID := seedModel("Toyota", "MPV", "Avanza")
			seedCar(avanzaID, models.TransmissionAutomatic, 100, 2018, false)

			cars, err := s.Car().List(ctx, store.WithSort([]store.SortParam{{Field: "password; DROP TABLE cars"}}))

			Expect(err).NotTo(HaveOccurred())
			Expect(cars).To(HaveLen(1))
		})

		It("should paginate with limit and offset", func() {
			avanzaID := seedModel("Toyota", "MPV", "Avanza")
			seedCar(avanzaID, models.TransmissionAutomatic, 100, 2018, false)
			second := seedCar(avanzaID, models.TransmissionAutomatic, 200, 2019, false)
			seedCar(avanzaID, models.TransmissionAutomatic, 300, 2020, false)

			cars, err := s.Car().List(ctx, store.WithDefaultSort(), store.WithLimit(1), store.WithOffset(1))

			Expect(err).NotTo(HaveOccurred())
			Expect(cars).To(HaveLen(1))
			Expect(cars[0].ID).To(Equal(second.ID))
		})
	})

	Context("Count", func() {
		// Given two Toyota cars and one Honda car
		// When we count with the brand filter
		// Then only the matching cars are counted
		It("should count with filters applied", func() {
			avanzaID := seedModel("Toyota", "MPV", "Avanza")
			jazzID := seedModel("Honda", "Hatchback", "Jazz")
			seedCar(avanzaID, models.TransmissionAutomatic, 150, 2020, false)
			seedCar(avanzaID, models.TransmissionManual, 160, 2019, false)
			seedCar(jazzID, models.TransmissionManual, 200, 2021, false)

			toyota, err := s.Brand().GetByName(ctx, "Toyota")
			Expect(err).NotTo(HaveOccurred())

			count, err := s.Car().Count(ctx, store.ByBrand(toyota.ID))

			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))
		})
	})

	Context("Get", func() {
		It("should return CarNotFoundError for an unknown id", func() {
			_, err := s.Car().Get(ctx, "missing")

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		It("should expand model, brand and body type", func() {
			avanzaID := seedModel("Toyota", "MPV", "Avanza")
			created := seedCar(avanzaID, models.TransmissionAutomatic, 150, 2020, false)

			car, err := s.Car().Get(ctx, created.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(car.Model).NotTo(BeNil())
			Expect(car.Model.Name).To(Equal("Avanza"))
			Expect(car.BrandName()).To(Equal("Toyota"))
			Expect(car.BodyTypeName()).To(Equal("MPV"))
		})
	})

	Context("Images", func() {
		// Given a car created with three images
		// When we read it back
		// Then the filenames come back in their stored positions
		It("should keep image order", func() {
			avanzaID := seedModel("Toyota", "MPV", "Avanza")
			created, err := s.Car().Create(ctx, &models.Car{
				ModelID:      avanzaID,
				Condition:    90,
				Transmission: models.TransmissionAutomatic,
				Year:         2020,
				Images:       []string{"front.jpg", "side.jpg", "rear.jpg"},
			})
			Expect(err).NotTo(HaveOccurred())

			car, err := s.Car().Get(ctx, created.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(car.Images).To(Equal([]string{"front.jpg", "side.jpg", "rear.jpg"}))
		})

		It("should replace the image list on update", func() {
			avanzaID := seedModel("Toyota", "MPV", "Avanza")
			created, err := s.Car().Create(ctx, &models.Car{
				ModelID:      avanzaID,
				Condition:    90,
				Transmission: models.TransmissionAutomatic,
				Year:         2020,
				Images:       []string{"front.jpg", "side.jpg"},
			})
			Expect(err).NotTo(HaveOccurred())

			created.Images = []string{"side.jpg", "interior.jpg"}
			_, err = s.Car().Update(ctx, created)
			Expect(err).NotTo(HaveOccurred())

			car, err := s.Car().Get(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(car.Images).To(Equal([]string{"side.jpg", "interior.jpg"}))
		})
	})

	Context("Update", func() {
		It("should return CarNotFoundError for an unknown id", func() {
			_, err := s.Car().Update(ctx, &models.Car{ID: "missing", Transmission: models.TransmissionManual})

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})

	Context("SetSold", func() {
		It("should flip the sold flag", func() {
			avanzaID := seedModel("Toyota", "MPV", "Avanza")
			created := seedCar(avanzaID, models.TransmissionAutomatic, 150, 2020, false)

			err := s.Car().SetSold(ctx, created.ID, true)
			Expect(err).NotTo(HaveOccurred())

			car, err := s.Car().Get(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(car.Sold).To(BeTrue())
		})

		It("should return CarNotFoundError for an unknown id", func() {
			err := s.Car().SetSold(ctx, "missing", true)

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})

	Context("Delete", func() {
		It("should remove the car and its image rows", func() {
			avanzaID := seedModel("Toyota", "MPV", "Avanza")
			created, err := s.Car().Create(ctx, &models.Car{
				ModelID:      avanzaID,
				Condition:    90,
				Transmission: models.TransmissionAutomatic,
				Year:         2020,
				Images:       []string{"front.jpg"},
			})
			Expect(err).NotTo(HaveOccurred())

			err = s.Car().Delete(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = s.Car().Get(ctx, created.ID)
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())

			var imageRows int
			err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM car_images WHERE car_id = ?", created.ID).Scan(&imageRows)
			Expect(err).NotTo(HaveOccurred())
			Expect(imageRows).To(Equal(0))
		})
	})
})
