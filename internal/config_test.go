package internal_test

import (
	"os"
	"path/filepath"
	"time"

	"github.com/frahmantamala/employee-directory/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	writeConfig := func(body string) string {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600)).To(Succeed())
		return dir
	}

	Describe("LoadConfig", func() {
		It("reads the file and fills defaults", func() {
			dir := writeConfig(`
http_server:
  read_timeout: 10s
database:
  driver: sqlite
  source: "file:directory.db"
`)

			cfg, err := internal.LoadConfig(dir)

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Env).To(Equal("development"))
			Expect(cfg.Server.Port).To(Equal(8080))
			Expect(cfg.Server.ReadTimeout).To(Equal(10 * time.Second))
			Expect(cfg.Server.RequestTimeout).To(Equal(5 * time.Second))
			Expect(cfg.Database.Driver).To(Equal(internal.DriverSQLite))
			Expect(cfg.Database.GetDSN()).To(Equal("file:directory.db"))
			Expect(cfg.Logging.Level).To(Equal("info"))
			Expect(cfg.Logging.Format).To(Equal("text"))
		})

		It("lets ENV_ variables override file values", func() {
			dir := writeConfig(`
database:
  driver: postgres
  source: "postgres://file"
`)
			GinkgoT().Setenv("ENV_DATABASE_SOURCE", "postgres://env")

			cfg, err := internal.LoadConfig(dir)

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Database.Source).To(Equal("postgres://env"))
		})

		It("fails without a config file", func() {
			_, err := internal.LoadConfig(GinkgoT().TempDir())
			Expect(err).To(HaveOccurred())
		})

		It("rejects an invalid configuration", func() {
			dir := writeConfig(`
database:
  driver: oracle
logging:
  level: loud
`)

			_, err := internal.LoadConfig(dir)

			Expect(err).To(MatchError(ContainSubstring(`unsupported driver "oracle"`)))
			Expect(err).To(MatchError(ContainSubstring(`invalid level "loud"`)))
		})
	})

	Describe("LoadConfigFromEnv", func() {
		It("reads plain environment variables", func() {
			GinkgoT().Setenv("HTTP_PORT", "9090")
			GinkgoT().Setenv("DB_SOURCE", "postgres://container")
			GinkgoT().Setenv("HTTP_REQUEST_TIMEOUT", "3s")

			cfg := internal.LoadConfigFromEnv()

			Expect(cfg.Server.Port).To(Equal(9090))
			Expect(cfg.Server.RequestTimeout).To(Equal(3 * time.Second))
			Expect(cfg.Database.Source).To(Equal("postgres://container"))
			Expect(cfg.Validate()).To(Succeed())
		})
	})

	Describe("DatabaseConfig", func() {
		It("checks idle connections only against a bounded pool", func() {
			cfg := internal.DatabaseConfig{Driver: internal.DriverPostgres, Source: "x", MaxIdleConns: 5}
			Expect(cfg.Validate()).To(Succeed())

			cfg.MaxOpenConns = 2
			Expect(cfg.Validate()).To(HaveOccurred())
		})
	})
})
