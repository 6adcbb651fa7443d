package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/oViqa/Raihan/internal/models"
	"github.com/oViqa/Raihan/internal/store"
)

func main() {
	addAdminCmd := flag.NewFlagSet("add-admin", flag.ExitOnError)
	email := addAdminCmd.String("email", "", "Email for the new admin")
	password := addAdminCmd.String("password", "", "Password for the new admin")

	if len(os.Args) < 2 {
		fmt.Println("expected 'add-admin' or 'seed' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-admin":
		addAdminCmd.Parse(os.Args[2:])
		if *email == "" || *password == "" {
			fmt.Println("email and password are required")
			addAdminCmd.PrintDefaults()
			os.Exit(1)
		}
		createAdmin(*email, *password)
	case "seed":
		seedCatalog()
	default:
		fmt.Println("expected 'add-admin' or 'seed' subcommand")
		os.Exit(1)
	}
}

func openStore() *store.Store {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./raihan.db"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	return db
}

func createAdmin(email, password string) {
	db := openStore()

	admin, err := db.CreateAdmin(email, password)
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	fmt.Printf("Admin %s created with id %d\n", admin.Email, admin.ID)
}

// seedCatalog loads the cooperative's sample catalog so a fresh install
// has something to show.
func seedCatalog() {
	db := openStore()

	categories := []models.Category{
		{Name: "Huiles essentielles", Description: "Huiles essentielles distillées à la vapeur"},
		{Name: "Huiles végétales", Description: "Huiles pressées à froid"},
		{Name: "Plantes sèches", Description: "Herbes et plantes séchées du Moyen Atlas"},
		{Name: "Hydrolats", Description: "Eaux florales"},
		{Name: "Sels de bain", Description: "Sels et soins pour le bain"},
	}

	categoryIDs := make(map[string]int, len(categories))
	for i := range categories {
		created, err := db.CreateCategory(&categories[i])
		if err != nil {
			log.Fatalf("Failed to seed category %q: %v", categories[i].Name, err)
		}
		categoryIDs[created.Name] = created.ID
	}

	products := []struct {
		product  models.Product
		category string
	}{
		{models.Product{Name: "Huile essentielle de Lavande", Description: "Huile essentielle pure de lavande, 100% naturelle", Price: 15.99, StockQuantity: 50}, "Huiles essentielles"},
		{models.Product{Name: "Huile d'Argan", Description: "Huile d'argan pure, pressée à froid", Price: 25.99, StockQuantity: 30}, "Huiles végétales"},
		{models.Product{Name: "Thé à la Menthe", Description: "Thé vert marocain avec menthe fraîche", Price: 8.99, StockQuantity: 100}, "Plantes sèches"},
		{models.Product{Name: "Eau de Rose", Description: "Hydrolat de rose pure", Price: 12.99, StockQuantity: 40}, "Hydrolats"},
		{models.Product{Name: "Sel de Bain aux Fleurs", Description: "Sel de bain aux fleurs séchées", Price: 18.99, StockQuantity: 25}, "Sels de bain"},
	}

	for _, entry := range products {
		entry.product.CategoryID = categoryIDs[entry.category]
		if _, err := db.CreateProduct(&entry.product); err != nil {
			log.Fatalf("Failed to seed product %q: %v", entry.product.Name, err)
		}
	}

	fmt.Printf("Seeded %d categories and %d products\n", len(categories), len(products))
}
