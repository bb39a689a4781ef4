package generators

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/mmrzaf/synthgen/internal/domain"
	"github.com/mmrzaf/synthgen/internal/randutil"
	"github.com/mmrzaf/synthgen/internal/table"
	"github.com/mmrzaf/synthgen/internal/timeutil"
)

// Business generates commerce records: customers, transactions, product
// catalogs and time-bucketed sales aggregates.
type Business struct {
	src *randutil.Source
}

func NewBusiness(src *randutil.Source) *Business {
	return &Business{src: src}
}

// productCategories keeps a fixed order so category draws are
// deterministic for a fixed seed.
var productCategories = []string{"Electronics", "Clothing", "Home & Garden", "Books", "Sports"}

var productsByCategory = map[string][]string{
	"Electronics": {"Laptop", "Smartphone", "Tablet", "Smartwatch", "Headphones",
		"Monitor", "Keyboard", "Mouse", "Camera", "Speaker"},
	"Clothing": {"T-Shirt", "Jeans", "Dress", "Jacket", "Shoes",
		"Sweater", "Shorts", "Skirt", "Coat", "Sneakers"},
	"Home & Garden": {"Chair", "Table", "Lamp", "Rug", "Plant",
		"Desk", "Bookshelf", "Mirror", "Vase", "Cushion"},
	"Books": {"Fiction Novel", "Business Book", "Cookbook", "Biography",
		"Self-Help", "Science Fiction", "Mystery", "Romance", "History", "Art Book"},
	"Sports": {"Running Shoes", "Yoga Mat", "Dumbbell Set", "Tennis Racket",
		"Basketball", "Bicycle", "Fitness Tracker", "Protein Powder", "Water Bottle", "Gym Bag"},
}

var priceBands = map[string][2]float64{
	"Electronics":   {50, 2000},
	"Clothing":      {15, 200},
	"Home & Garden": {20, 500},
	"Books":         {10, 50},
	"Sports":        {15, 800},
}

type CustomerParams struct {
	Rows              int
	IncludeAddress    bool
	IncludeSignupDate bool
}

// Customers produces independent per-row customer profiles. Signup dates
// are drawn unsorted from a two-year trailing window.
func (g *Business) Customers(p CustomerParams) (*domain.Table, error) {
	if err := checkRows(p.Rows); err != nil {
		return nil, err
	}
	n := p.Rows

	firstNames := make([]string, n)
	lastNames := make([]string, n)
	emails := make([]string, n)
	phones := make([]string, n)
	for i := 0; i < n; i++ {
		firstNames[i] = faker.FirstName()
		lastNames[i] = faker.LastName()
		emails[i] = faker.Email()
		phones[i] = faker.Phonenumber()
	}

	b := table.NewBuilder(n).
		Add("customer_id", randutil.IDs(n, "CUST_", 1)).
		AddStrings("first_name", firstNames).
		AddStrings("last_name", lastNames).
		AddStrings("email", emails).
		AddStrings("phone", phones)

	if p.IncludeAddress {
		streets := make([]string, n)
		cities := make([]string, n)
		states := make([]string, n)
		zips := make([]string, n)
		countries := make([]string, n)
		for i := 0; i < n; i++ {
			streets[i] = strconv.Itoa(1+g.src.Intn(9999)) + " " + g.src.Pick(streetPool)
			cities[i] = g.src.Pick(cityPool)
			states[i] = g.src.Pick(statePool)
			zips[i] = fmt.Sprintf("%05d", g.src.Intn(100000))
			countries[i] = g.src.Pick(countryPool)
		}
		b.AddStrings("street_address", streets).
			AddStrings("city", cities).
			AddStrings("state", states).
			AddStrings("zip_code", zips).
			AddStrings("country", countries)
	}

	if p.IncludeSignupDate {
		now := time.Now()
		b.Add("signup_date", boxTimes(g.src.Timestamps(n, now.AddDate(0, 0, -730), now, false)))
	}

	return b.Build()
}

type TransactionParams struct {
	Rows            int
	NCustomers      int       // zero: max(1, Rows/3)
	StartDate       time.Time // zero: 365 days before now
	EndDate         time.Time // zero: now
	IncludeShipping bool
}

const taxRate = 0.08

// Transactions produces order records. The customer reference models a
// referential association: a uniformly drawn CUST_ id zero-padded to the
// digit width of NCustomers, without guaranteeing that customer exists in
// a separately generated table.
func (g *Business) Transactions(p TransactionParams) (*domain.Table, error) {
	if err := checkRows(p.Rows); err != nil {
		return nil, err
	}
	n := p.Rows
	if p.NCustomers == 0 {
		p.NCustomers = n / 3
		if p.NCustomers < 1 {
			p.NCustomers = 1
		}
	}
	if p.NCustomers < 0 {
		return nil, fmt.Errorf("%w: n_customers %d", domain.ErrInvalidParameter, p.NCustomers)
	}
	now := time.Now()
	if p.EndDate.IsZero() {
		p.EndDate = now
	}
	if p.StartDate.IsZero() {
		p.StartDate = now.AddDate(0, 0, -365)
	}
	if p.EndDate.Before(p.StartDate) {
		return nil, fmt.Errorf("%w: date window [%s, %s]", domain.ErrInvalidParameter,
			p.StartDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02"))
	}

	categories := make([]string, n)
	products := make([]string, n)
	prices := make([]float64, n)
	for i := 0; i < n; i++ {
		cat := g.src.Pick(productCategories)
		band := priceBands[cat]
		categories[i] = cat
		products[i] = g.src.Pick(productsByCategory[cat])
		prices[i] = randutil.Round(band[0]+g.src.Float64()*(band[1]-band[0]), 2)
	}

	width := len(strconv.Itoa(p.NCustomers))
	customerIDs := make([]string, n)
	for i := 0; i < n; i++ {
		customerIDs[i] = fmt.Sprintf("CUST_%0*d", width, 1+g.src.Intn(p.NCustomers))
	}

	quantities := make([]int, n)
	subtotals := make([]float64, n)
	taxes := make([]float64, n)
	shipping := make([]float64, n)
	totals := make([]float64, n)
	for i := 0; i < n; i++ {
		quantities[i] = g.src.IntBetween(1, 5)
		subtotals[i] = randutil.Round(prices[i]*float64(quantities[i]), 2)
		taxes[i] = randutil.Round(subtotals[i]*taxRate, 2)
		if p.IncludeShipping {
			shipping[i] = randutil.Round(g.src.Float64()*15, 2)
		}
		totals[i] = randutil.Round(subtotals[i]+taxes[i]+shipping[i], 2)
	}

	statuses, err := g.src.Categorical(n,
		[]string{"Completed", "Pending", "Shipped", "Cancelled", "Processing"},
		[]float64{0.7, 0.1, 0.1, 0.05, 0.05})
	if err != nil {
		return nil, err
	}

	b := table.NewBuilder(n).
		Add("transaction_id", randutil.IDs(n, "TXN_", 1)).
		AddStrings("customer_id", customerIDs).
		Add("transaction_date", boxTimes(g.src.Timestamps(n, p.StartDate, p.EndDate, true))).
		AddStrings("product_name", products).
		AddStrings("category", categories).
		Add("unit_price", boxFloats(prices)).
		Add("quantity", boxInts(quantities)).
		Add("subtotal", boxFloats(subtotals)).
		Add("tax", boxFloats(taxes)).
		AddStrings("status", statuses)

	if p.IncludeShipping {
		b.Add("shipping_cost", boxFloats(shipping))
	}
	b.Add("total_amount", boxFloats(totals))

	return b.Build()
}

type ProductParams struct {
	Rows             int
	IncludeInventory bool
}

// Products produces a product catalog.
func (g *Business) Products(p ProductParams) (*domain.Table, error) {
	if err := checkRows(p.Rows); err != nil {
		return nil, err
	}
	n := p.Rows

	categories := make([]string, n)
	products := make([]string, n)
	prices := make([]float64, n)
	suppliers := make([]string, n)
	descriptions := make([]string, n)
	for i := 0; i < n; i++ {
		cat := g.src.Pick(productCategories)
		band := priceBands[cat]
		categories[i] = cat
		products[i] = g.src.Pick(productsByCategory[cat])
		prices[i] = randutil.Round(band[0]+g.src.Float64()*(band[1]-band[0]), 2)
		suppliers[i] = faker.LastName() + " " + g.src.Pick(supplierSuffixPool)
		descriptions[i] = faker.Sentence()
	}

	b := table.NewBuilder(n).
		Add("product_id", randutil.IDs(n, "PROD_", 1)).
		AddStrings("product_name", products).
		AddStrings("category", categories).
		Add("price", boxFloats(prices)).
		AddStrings("supplier", suppliers).
		AddStrings("description", descriptions)

	if p.IncludeInventory {
		stock := make([]int, n)
		reorder := make([]int, n)
		for i := 0; i < n; i++ {
			stock[i] = g.src.Intn(500)
			reorder[i] = g.src.IntBetween(10, 50)
		}
		b.Add("stock_quantity", boxInts(stock)).
			Add("reorder_level", boxInts(reorder))
	}

	return b.Build()
}

type SalesParams struct {
	Rows      int
	StartDate time.Time     // zero: 365 days before now
	Frequency time.Duration // zero: daily buckets
}

// SalesData produces time-bucketed aggregate sales metrics.
func (g *Business) SalesData(p SalesParams) (*domain.Table, error) {
	if err := checkRows(p.Rows); err != nil {
		return nil, err
	}
	n := p.Rows
	if p.StartDate.IsZero() {
		p.StartDate = time.Now().AddDate(0, 0, -365)
	}
	if p.Frequency == 0 {
		p.Frequency = 24 * time.Hour
	}

	revenue, err := g.src.Numeric(n, 5000, 50000, randutil.DistUniform, 2)
	if err != nil {
		return nil, err
	}
	aov, err := g.src.Numeric(n, 50, 200, randutil.DistUniform, 2)
	if err != nil {
		return nil, err
	}

	orders := make([]int, n)
	uniqueCustomers := make([]int, n)
	units := make([]int, n)
	for i := 0; i < n; i++ {
		orders[i] = g.src.IntBetween(50, 500)
		uniqueCustomers[i] = g.src.IntBetween(30, 300)
		units[i] = g.src.IntBetween(100, 1000)
	}

	return table.NewBuilder(n).
		Add("date", boxTimes(timeutil.Sequence(p.StartDate, p.Frequency, n))).
		Add("total_revenue", revenue).
		Add("total_orders", boxInts(orders)).
		Add("unique_customers", boxInts(uniqueCustomers)).
		Add("avg_order_value", aov).
		Add("total_units_sold", boxInts(units)).
		Build()
}
