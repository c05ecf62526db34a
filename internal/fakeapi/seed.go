package fakeapi

import "github.com/five82/catvote/internal/catapi"

// DemoStore returns a store seeded with a handful of cats and breeds. The
// breed list is deliberately unsorted and mixes casing so the client's
// normalization is visible in demo mode.
func DemoStore() *Store {
	cats := []catapi.Cat{
		{ID: "b7a", URL: "/img/b7a.png"},
		{ID: "c41", URL: "/img/c41.png"},
		{ID: "9f0", URL: "/img/9f0.png"},
		{ID: "e12", URL: "/img/missing-e12.png"},
		{ID: "a83", URL: "/img/a83.png"},
		{ID: "d5c", URL: "/img/d5c.png"},
		{ID: "11b", URL: "/img/11b.png"},
	}
	breeds := []catapi.Breed{
		{
			ID:           "sibe",
			Name:         "Siberian",
			Origin:       "Russia",
			Description:  "Affectionate and playful, with a triple coat built for winter.",
			WikipediaURL: "https://en.wikipedia.org/wiki/Siberian_(cat)",
			Images:       []string{"/img/sibe-1.png", "/img/sibe-2.png", "/img/sibe-3.png"},
		},
		{
			ID:           "abys",
			Name:         "Abyssinian",
			Origin:       "Egypt",
			Description:  "Active, energetic and independent; loves to climb and explore.",
			WikipediaURL: "https://en.wikipedia.org/wiki/Abyssinian_(cat)",
			Images:       []string{"/img/abys-1.png", "/img/abys-2.png", "/img/missing-abys-3.png", "/img/abys-4.png"},
		},
		{
			ID:          "bamb",
			Name:        "bambino",
			Origin:      "United States",
			Description: "A hairless, short-legged breed that craves attention.",
		},
		{
			ID:           "beng",
			Name:         "Bengal",
			Origin:       "United States",
			Description:  "Alert and agile with a distinctive spotted coat.",
			WikipediaURL: "https://en.wikipedia.org/wiki/Bengal_cat",
			Images:       []string{"/img/beng-1.png"},
		},
		{
			ID:     "amis",
			Name:   "Australian Mist",
			Origin: "Australia",
			Images: []string{"/img/amis-1.png", "/img/amis-2.png"},
		},
	}
	return NewStore(cats, breeds, 5)
}
