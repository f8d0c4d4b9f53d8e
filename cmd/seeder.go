package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/frahmantamala/employee-directory/internal/core/database"
	"github.com/frahmantamala/employee-directory/internal/employee"
	employeePostgres "github.com/frahmantamala/employee-directory/internal/employee/postgres"
	"github.com/frahmantamala/employee-directory/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type sampleEmployee struct {
	FirstName, LastName, Email, Phone string
	Department, Position              string
	HireDate                          string
	Salary                            string
}

var sampleEmployees = []sampleEmployee{
	{"John", "Doe", "john.doe@company.com", "1234567890", "IT", "Software Engineer", "2020-01-15", "75000.00"},
	{"Jane", "Smith", "jane.smith@company.com", "0987654321", "HR", "HR Manager", "2019-03-20", "65000.00"},
	{"Mike", "Johnson", "mike.johnson@company.com", "1122334455", "Finance", "Accountant", "2021-06-10", "55000.00"},
	{"Sarah", "Wilson", "sarah.wilson@company.com", "5566778899", "Marketing", "Marketing Specialist", "2022-02-28", "60000.00"},
	{"David", "Brown", "david.brown@company.com", "9988776655", "IT", "System Administrator", "2018-11-05", "70000.00"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample employees. Nothing is written when employees already exist, unless --clear is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := bootstrap()
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := initGorm(cfg, db)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		ctx := context.Background()
		repo := employeePostgres.NewEmployeeRepository(gormDB)
		service := employee.NewService(repo, database.NewTransactionManager(gormDB), logger.LoggerWrapper())

		if clearData {
			removed, err := repo.DeleteAll(ctx)
			if err != nil {
				log.Fatalf("failed to clear employees: %v", err)
			}
			fmt.Printf("Cleared %d employees\n", removed)
		}

		existing, err := service.SearchEmployees(ctx, employee.SearchCriteria{})
		if err != nil {
			log.Fatalf("failed to list employees: %v", err)
		}
		if len(existing) > 0 {
			fmt.Printf("Directory already holds %d employees; skipping seed\n", len(existing))
			return
		}

		for _, s := range sampleEmployees {
			emp, err := s.toEmployee()
			if err != nil {
				log.Fatalf("invalid sample employee %s: %v", s.Email, err)
			}
			created, err := service.CreateEmployee(ctx, emp)
			if err != nil {
				log.Fatalf("failed to insert employee %s: %v", s.Email, err)
			}
			fmt.Printf("Seeded employee %d: %s\n", created.ID, created.Email)
		}

		fmt.Println("Sample data initialized successfully")
	},
}

func (s sampleEmployee) toEmployee() (*employee.Employee, error) {
	hireDate, err := time.Parse(employee.DateLayout, s.HireDate)
	if err != nil {
		return nil, err
	}
	salary, err := decimal.NewFromString(s.Salary)
	if err != nil {
		return nil, err
	}
	return &employee.Employee{
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Email:       s.Email,
		PhoneNumber: s.Phone,
		Department:  s.Department,
		Position:    s.Position,
		HireDate:    hireDate,
		Salary:      salary,
		Status:      employee.StatusActive,
	}, nil
}
