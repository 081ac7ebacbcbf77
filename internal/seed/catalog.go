// Package seed holds the demo catalog loaded by cmd/seed and the
// integration fixtures.
package seed

import (
	"fmt"
	"time"

	"github.com/light-bringer/catalog-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
)

// Category ids of the demo catalog.
const (
	Books       int64 = 1
	Electronics int64 = 2
	Computers   int64 = 3
)

// Categories returns the demo categories.
func Categories() []domain.Category {
	return []domain.Category{
		{ID: Books, Name: "Livros"},
		{ID: Electronics, Name: "Eletrônicos"},
		{ID: Computers, Name: "Computadores"},
	}
}

type entry struct {
	name        string
	description string
	price       string
	categories  []int64
}

var entries = []entry{
	{"The Lord of the Rings", "A trilogia completa em edição de colecionador.", "90.50", []int64{Books}},
	{"Smart TV", "Smart TV 55 polegadas 4K com HDR.", "2190.00", []int64{Electronics}},
	{"Macbook Pro", "Notebook 14 polegadas com chip de alto desempenho.", "1250.00", []int64{Electronics, Computers}},
	{"PC Gamer", "Desktop para jogos com placa de vídeo dedicada.", "1200.00", []int64{Computers}},
	{"Rails for Dummies", "Introdução ao desenvolvimento web com Ruby on Rails.", "100.99", []int64{Books}},
	{"PC Gamer Ex", "Desktop gamer com refrigeração líquida.", "1350.00", []int64{Computers}},
	{"PC Gamer X", "Desktop gamer compacto.", "1350.00", []int64{Computers}},
	{"PC Gamer Alfa", "Desktop gamer de entrada.", "1850.00", []int64{Computers}},
	{"PC Gamer Tera", "Desktop gamer com 2 TB de armazenamento.", "1950.00", []int64{Computers}},
	{"PC Gamer Y", "Desktop gamer silencioso.", "1700.00", []int64{Computers}},
	{"PC Gamer Nitro", "Desktop gamer com overclock de fábrica.", "1450.00", []int64{Computers}},
	{"PC Gamer Card", "Desktop gamer com duas placas de vídeo.", "1850.00", []int64{Computers}},
	{"PC Gamer Plus", "Desktop gamer com monitor incluso.", "1350.00", []int64{Computers}},
	{"PC Gamer Hera", "Desktop gamer com iluminação RGB.", "2250.00", []int64{Computers}},
	{"PC Gamer Weed", "Desktop gamer com gabinete de vidro.", "2200.00", []int64{Computers}},
	{"PC Gamer Max", "Desktop gamer topo de linha.", "2340.00", []int64{Computers}},
	{"PC Gamer Turbo", "Desktop gamer com SSD NVMe.", "1280.00", []int64{Computers}},
	{"PC Gamer Hot", "Desktop gamer para streaming.", "1450.00", []int64{Computers}},
	{"PC Gamer Ez", "Desktop gamer pronto para jogar.", "1750.00", []int64{Computers}},
	{"PC Gamer Tr", "Desktop gamer com fonte modular.", "1650.00", []int64{Computers}},
	{"PC Gamer Tx", "Desktop gamer com placa-mãe premium.", "1680.00", []int64{Computers}},
	{"PC Gamer Er", "Desktop gamer com 64 GB de memória.", "1850.00", []int64{Computers}},
	{"PC Gamer Min", "Desktop gamer mini ITX.", "2250.00", []int64{Computers}},
	{"PC Gamer Boo", "Desktop gamer com teclado mecânico.", "2350.00", []int64{Computers}},
	{"PC Gamer Foo", "Desktop gamer com headset.", "4170.00", []int64{Computers}},
}

// Products builds the demo products with ids 1..25. Listing dates step back
// one day per product from clk.Now().
func Products(clk clock.Clock) ([]*domain.Product, error) {
	byID := make(map[int64]domain.Category)
	for _, c := range Categories() {
		byID[c.ID] = c
	}

	now := clk.Now().UTC().Truncate(time.Second)
	products := make([]*domain.Product, 0, len(entries))
	for i, e := range entries {
		cats := make([]domain.Category, 0, len(e.categories))
		for _, id := range e.categories {
			cats = append(cats, byID[id])
		}

		id := int64(i + 1)
		p, err := domain.NewProduct(
			id,
			e.name,
			e.description,
			domain.MustPrice(e.price),
			fmt.Sprintf("https://img.example.com/products/%d-big.jpg", id),
			now.AddDate(0, 0, -i),
			cats...,
		)
		if err != nil {
			return nil, fmt.Errorf("seed product %q: %w", e.name, err)
		}
		products = append(products, p)
	}
	return products, nil
}

// Plan collects the mutations that write categories and products.
func Plan(writer contracts.ProductWriter, categories []domain.Category, products []*domain.Product) *committer.CommitPlan {
	plan := committer.NewPlan()
	for _, c := range categories {
		plan.Add(writer.CategoryInsertMut(c))
	}
	for _, p := range products {
		plan.AddMultiple(writer.InsertMuts(p))
	}
	return plan
}
