package cmd

import (
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"qcube.GO/api"
	graphqlApi "qcube.GO/api/graphql"
	"qcube.GO/config"
	"qcube.GO/cron"
	"qcube.GO/cron/jobs"
	storeRepo "qcube.GO/model/repository/store"
	"qcube.GO/service/warehouse"
)

var serveWithCron bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the warehouse HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		w, err := openWarehouse()
		if err != nil {
			log.Fatalf("warehouse: %v", err)
		}

		// Initialize Redis
		config.InitRedis()
		redisStatus := "Redis not configured or not reachable, caching disabled."
		if config.RedisClient != nil {
			err := config.RedisClient.Ping(config.RedisCtx()).Err()
			if err == nil {
				redisStatus = "Redis connection successful."
			} else {
				config.RedisClient = nil // Disable Redis if not reachable
				redisStatus = "Redis configured but not reachable, caching disabled."
			}
		}
		log.Println(redisStatus)

		e := echo.New()
		e.HideBanner = true
		e.Use(middleware.Logger())
		e.Use(middleware.Recover())
		e.Use(middleware.Gzip())
		e.Use(middleware.Decompress())

		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				start := time.Now()
				err := next(c)
				duration := time.Since(start).Milliseconds()
				c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
				return err
			}
		})

		apiGroup := e.Group("/api")
		apiGroup.Use(getAuthMiddleware())
		api.ApplyModules(apiGroup, w)
		api.ApplyRoutes(e, w)
		graphqlApi.RegisterGraphQLRoutes(e, w)

		jobs.SetWarehouse(w)
		if serveWithCron {
			c := cron.StartCron()
			defer c.Stop()
			log.Println("Cron scheduler started.")
		}

		// ASCII banner on start (random font each run)
		fonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "doom", "larry3d", "puffy", "rectangles"}
		fig := figure.NewFigure("Q-Cube ->", fonts[rand.Intn(len(fonts))], true)
		fig.Print()

		port := config.AppConfig.Port
		if port == "" {
			port = "3000"
		}
		log.Printf("Server running on :%s", port)
		e.Logger.Fatal(e.Start(":" + port))
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveWithCron, "with-cron", false, "Run the cron scheduler inside the server process")
	rootCmd.AddCommand(serveCmd)
}

// openWarehouse connects the database and loads all collections.
func openWarehouse() (*warehouse.Warehouse, error) {
	db, err := config.NewDB()
	if err != nil {
		return nil, err
	}
	repo, err := storeRepo.NewStoreRepository(db)
	if err != nil {
		return nil, err
	}
	return warehouse.Open(repo), nil
}

func getAuthMiddleware() echo.MiddlewareFunc {
	skipPaths := config.GetAuthSkipperPaths()
	skipper := func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
	authType := os.Getenv("AUTH_TYPE")
	switch authType {
	case "key":
		apiKey := os.Getenv("API_KEY")
		return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
			Validator: func(key string, c echo.Context) (bool, error) {
				return key == apiKey, nil
			},
			Skipper: skipper,
		})
	default:
		return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
			Validator: func(username, password string, c echo.Context) (bool, error) {
				return username == os.Getenv("API_USER") && password == os.Getenv("API_PASS"), nil
			},
			Skipper: skipper,
		})
	}
}
