package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/core/database"
	employeeDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-directory/internal/employee"
	employeePostgres "github.com/frahmantamala/employee-directory/internal/employee/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm/logger"
)

var _ = Describe("Employee Service on the SQLite store", func() {
	var (
		ctx     context.Context
		sqlDB   *sql.DB
		repo    *employeePostgres.EmployeeRepository
		service *employee.Service
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		sqlDB, err = sql.Open("sqlite3", ":memory:")
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		db, err := database.NewGorm(internal.DriverSQLite, sqlDB, logger.Silent)
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&employeeDatamodel.Employee{})).To(Succeed())

		repo = employeePostgres.NewEmployeeRepository(db)
		service = employee.NewService(repo, database.NewTransactionManager(db), quietLogger)
	})

	AfterEach(func() {
		Expect(sqlDB.Close()).To(Succeed())
	})

	It("lets exactly one of several concurrent creates claim an email", func() {
		const writers = 8

		var wg sync.WaitGroup
		errs := make([]error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer GinkgoRecover()
				defer wg.Done()
				_, errs[i] = service.CreateEmployee(ctx, sampleEmployees()[0])
			}(i)
		}
		wg.Wait()

		created, conflicts := 0, 0
		for _, err := range errs {
			switch {
			case err == nil:
				created++
			case errors.Is(err, employee.ErrEmailConflict):
				conflicts++
			default:
				Fail("unexpected error: " + err.Error())
			}
		}
		Expect(created).To(Equal(1))
		Expect(conflicts).To(Equal(writers - 1))

		all, err := repo.GetAll(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(1))
	})

	It("returns the salary as stored", func() {
		created, err := service.CreateEmployee(ctx, newEmployee("Ann", "Lee", "ann.lee@company.com", "IT", "Dev", "2020-01-01", "9999999999.99"))
		Expect(err).NotTo(HaveOccurred())

		stored, err := service.GetEmployeeByID(ctx, created.ID)

		Expect(err).NotTo(HaveOccurred())
		Expect(stored.Salary.String()).To(Equal(created.Salary.String()))
	})
})
