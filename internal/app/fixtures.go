package app

import (
	"context"
	"fmt"
	"time"

	"rentdir/internal/models"
	"rentdir/internal/repositories"
)

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func months(n int) *int { return &n }

// Fixtures returns the sample listings the directory starts with.
func Fixtures() []models.Property {
	return []models.Property{
		{
			Title:       "Modern 2 Bedroom Apartment",
			Address:     "2555 Main St",
			City:        "San Francisco",
			State:       "CA",
			ZipCode:     "94110",
			Price:       2800,
			Beds:        2,
			Baths:       2,
			Sqft:        1050,
			Description: "Beautiful 2 bedroom apartment in the heart of the Mission District. This modern unit features stainless steel appliances, hardwood floors throughout, in-unit laundry, and a private balcony with city views.",
			Images: []string{
				"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2",
				"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267",
			},
			Amenities:     []string{"In-unit Laundry", "Dishwasher", "Pets Allowed"},
			PetFriendly:   true,
			AvailableFrom: date(2023, time.September, 1),
			LeaseLength:   months(12),
			Status:        models.PropertyActive,
		},
		{
			Title:       "Luxury Studio in Berkeley",
			Address:     "138 Oak St",
			City:        "Berkeley",
			State:       "CA",
			ZipCode:     "94710",
			Price:       1950,
			Beds:        1,
			Baths:       1,
			Sqft:        750,
			Description: "Cozy studio apartment in a great Berkeley location. Features hardwood floors, modern kitchen, and great natural light.",
			Images: []string{
				"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267",
				"https://images.unsplash.com/photo-1493809842364-78817add7ffb",
			},
			Amenities:     []string{"In-unit Laundry", "Hardwood Floors"},
			AvailableFrom: date(2023, time.August, 15),
			LeaseLength:   months(12),
			Status:        models.PropertyActive,
		},
		{
			Title:       "Spacious 2 Bedroom with Balcony",
			Address:     "455 Valencia St",
			City:        "San Francisco",
			State:       "CA",
			ZipCode:     "94103",
			Price:       3200,
			Beds:        2,
			Baths:       2,
			Sqft:        1100,
			Description: "Beautiful 2 bedroom apartment with a private balcony in the heart of the Mission District. This modern unit features stainless steel appliances, hardwood floors throughout, and in-unit laundry.",
			Images: []string{
				"https://images.unsplash.com/photo-1493809842364-78817add7ffb",
				"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2",
			},
			Amenities:     []string{"Pets Allowed", "Balcony", "Parking"},
			PetFriendly:   true,
			AvailableFrom: date(2023, time.September, 1),
			LeaseLength:   months(12),
			Status:        models.PropertyActive,
		},
		{
			Title:       "Charming 2 Bedroom in Oakland",
			Address:     "742 Evergreen Terrace",
			City:        "Oakland",
			State:       "CA",
			ZipCode:     "94607",
			Price:       2500,
			Beds:        2,
			Baths:       1,
			Sqft:        950,
			Description: "Charming 2 bedroom, 1 bathroom apartment in Oakland with garden access and lots of character.",
			Images: []string{
				"https://images.unsplash.com/photo-1502672260266-1c1ef2d93688",
				"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2",
			},
			Amenities:     []string{"Pets Allowed", "Garden Access"},
			PetFriendly:   true,
			AvailableFrom: date(2023, time.August, 1),
			LeaseLength:   months(12),
			Status:        models.PropertyActive,
		},
	}
}

// SeedFixtures inserts Fixtures unless the directory already has listings,
// so that a durable store is seeded only once.
func SeedFixtures(ctx context.Context, repo repositories.PropertyRepository) (int, error) {
	existing, err := repo.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	fixtures := Fixtures()
	for i := range fixtures {
		if err := repo.Create(ctx, &fixtures[i]); err != nil {
			return i, fmt.Errorf("seed %q: %w", fixtures[i].Title, err)
		}
	}
	return len(fixtures), nil
}
