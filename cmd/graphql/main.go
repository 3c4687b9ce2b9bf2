// Standalone GraphQL server — run with: go run ./cmd/graphql
package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"qcube.GO/api"
	graphqlApi "qcube.GO/api/graphql"
	"qcube.GO/config"
	_ "qcube.GO/custom"
	storeRepo "qcube.GO/model/repository/store"
	"qcube.GO/service/warehouse"
)

func main() {
	_ = godotenv.Load()
	config.LoadAppConfig()

	db, err := config.NewDB()
	if err != nil {
		log.Fatal("db:", err)
	}
	repo, err := storeRepo.NewStoreRepository(db)
	if err != nil {
		log.Fatal("store:", err)
	}
	w := warehouse.Open(repo)

	e := echo.New()
	e.HideBanner = true
	graphqlApi.RegisterGraphQLRoutes(e, w)
	api.ApplyRoutes(e, w)

	// ASCII banner on start (random font each run)
	gqlFonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "doom", "larry3d", "puffy", "rectangles"}
	fig := figure.NewFigure("Q-Cube GQL ->", gqlFonts[rand.Intn(len(gqlFonts))], true)
	fig.Print()
	fmt.Println("Standalone GraphQL server")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	log.Printf("GraphQL at http://localhost:%s/graphql  Playground at http://localhost:%s/playground", port, port)
	e.Logger.Fatal(e.Start(":" + port))
}
