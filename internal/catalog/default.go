package catalog

import "github.com/nikolayk812/techstore-cart/internal/domain"

var defaultProducts = []domain.Product{
	{
		ID:          1,
		Name:        "iPhone 15 Pro",
		Price:       89990,
		Category:    "smartphones",
		Image:       "https://avatars.mds.yandex.net/get-marketpic/12591091/pic47209876819a94ae18176ac038ea8f47/orig",
		Description: "The most powerful iPhone with the A17 Pro chip",
	},
	{
		ID:          2,
		Name:        "MacBook Air M2",
		Price:       99990,
		Category:    "laptops",
		Image:       "https://img.tehnomaks.ru/img/prod/full/783c514e777447e4e7c29e29035e9d37616cac3f.jpg",
		Description: "Ultra-thin and powerful laptop",
	},
	{
		ID:          3,
		Name:        "AirPods Pro 2",
		Price:       24990,
		Category:    "headphones",
		Image:       "https://avatars.mds.yandex.net/get-mpic/1554397/2a00000191ddf02b105288dc731601ef5c21/9hq",
		Description: "Best-in-class noise cancellation",
	},
}

// Default is the TechStore storefront catalog.
func Default() *Catalog {
	c, err := New(defaultProducts...)
	if err != nil {
		panic(err) // static data
	}
	return c
}
