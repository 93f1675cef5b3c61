package main

import (
	"os"

	"github.com/lib/pq"
	"github.com/nbmtravel/booking-backend/internal/config"
	"github.com/nbmtravel/booking-backend/internal/database"
	"github.com/sirupsen/logrus"
)

type seedPackage struct {
	Slug        string
	Title       string
	Description string
	Images      []string
	Price       float64
	Duration    int
	Highlights  []string
	Destination string // destination slug
}

var destinations = []struct {
	Slug        string
	Name        string
	Description string
}{
	{
		Slug:        "paris",
		Name:        "Paris",
		Description: "Experience the romance and culture of the City of Light with our curated Parisian adventures.",
	},
	{
		Slug:        "tokyo",
		Name:        "Tokyo",
		Description: "Discover the perfect blend of ancient traditions and modern innovation in Japan's vibrant capital.",
	},
	{
		Slug:        "bali",
		Name:        "Bali",
		Description: "Unwind in paradise with stunning beaches, lush landscapes, and rich cultural experiences.",
	},
}

var packages = []seedPackage{
	{
		Slug:        "paris-romantic-getaway",
		Title:       "Paris Romantic Getaway",
		Description: "A 5-day romantic journey through Paris featuring iconic landmarks, fine dining, and intimate experiences. Visit the Eiffel Tower, Louvre Museum, Notre-Dame, and enjoy sunset cruises on the Seine. Includes luxury hotel stays, breakfast, and guided tours.",
		Images: []string{
			"https://images.unsplash.com/photo-1502602898657-3e91760cbb34?w=800",
			"https://images.unsplash.com/photo-1502602898657-3e91760cbb34?w=800",
			"https://images.unsplash.com/photo-1502602898657-3e91760cbb34?w=800",
		},
		Price:    2499.99,
		Duration: 5,
		Highlights: []string{
			"Eiffel Tower visit with skip-the-line access",
			"Louvre Museum guided tour",
			"Seine River sunset cruise",
			"4-star hotel in central Paris",
			"Daily breakfast included",
		},
		Destination: "paris",
	},
	{
		Slug:        "paris-cultural-exploration",
		Title:       "Paris Cultural Exploration",
		Description: "Immerse yourself in Parisian culture with this 7-day comprehensive tour. Explore world-class museums, charming neighborhoods, art galleries, and indulge in authentic French cuisine. Perfect for art lovers and culture enthusiasts.",
		Images: []string{
			"https://images.unsplash.com/photo-1549144511-f099e773c147?w=800",
			"https://images.unsplash.com/photo-1549144511-f099e773c147?w=800",
			"https://images.unsplash.com/photo-1549144511-f099e773c147?w=800",
		},
		Price:    3199.99,
		Duration: 7,
		Highlights: []string{
			"Visit to Musée d'Orsay and Centre Pompidou",
			"Montmartre walking tour",
			"Cooking class with a local chef",
			"Versailles day trip",
			"Art gallery visits",
		},
		Destination: "paris",
	},
	{
		Slug:        "tokyo-adventure",
		Title:       "Tokyo Adventure",
		Description: "Experience the electric energy of Tokyo in this 6-day adventure. From ancient temples to futuristic districts, enjoy the best of traditional and modern Japan. Includes sushi-making classes, temple visits, and shopping in Harajuku.",
		Images: []string{
			"https://images.unsplash.com/photo-1540959733332-eab4deabeeaf?w=800",
			"https://images.unsplash.com/photo-1540959733332-eab4deabeeaf?w=800",
			"https://images.unsplash.com/photo-1540959733332-eab4deabeeaf?w=800",
		},
		Price:    2899.99,
		Duration: 6,
		Highlights: []string{
			"Shibuya Crossing and Harajuku exploration",
			"Senso-ji Temple visit",
			"Sushi-making experience",
			"Day trip to Mount Fuji",
			"Traditional ryokan stay",
		},
		Destination: "tokyo",
	},
	{
		Slug:        "bali-tropical-paradise",
		Title:       "Bali Tropical Paradise",
		Description: "Relax and rejuvenate in Bali's tropical paradise. This 8-day retreat includes beach time, temple visits, rice terrace tours, spa treatments, and authentic Balinese cuisine. Perfect for those seeking peace and natural beauty.",
		Images: []string{
			"https://images.unsplash.com/photo-1537996194471-e657df975ab4?w=800",
			"https://images.unsplash.com/photo-1537996194471-e657df975ab4?w=800",
			"https://images.unsplash.com/photo-1537996194471-e657df975ab4?w=800",
		},
		Price:    1899.99,
		Duration: 8,
		Highlights: []string{
			"Beachfront resort accommodation",
			"Ubud rice terrace tour",
			"Traditional Balinese spa day",
			"Temple visits (Uluwatu, Tanah Lot)",
			"Sunrise volcano trek",
		},
		Destination: "bali",
	},
	{
		Slug:        "bali-wellness-retreat",
		Title:       "Bali Wellness Retreat",
		Description: "A transformative 10-day wellness journey in Bali. Includes yoga sessions, meditation, organic food, spa treatments, and cultural workshops. Designed for holistic healing and personal growth.",
		Images: []string{
			"https://images.unsplash.com/photo-1507525428034-b723cf961d3e?w=800",
			"https://images.unsplash.com/photo-1507525428034-b723cf961d3e?w=800",
			"https://images.unsplash.com/photo-1507525428034-b723cf961d3e?w=800",
		},
		Price:    2299.99,
		Duration: 10,
		Highlights: []string{
			"Daily yoga and meditation sessions",
			"Organic farm-to-table meals",
			"Healing spa treatments",
			"Cultural immersion workshops",
			"Villa accommodation in Ubud",
		},
		Destination: "bali",
	},
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(cfg.Database.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Clear existing data
	for _, table := range []string{"payment_events", "bookings", "packages", "destinations"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			logger.Fatalf("Failed to clear %s: %v", table, err)
		}
	}

	destinationIDs := make(map[string]string)
	for _, d := range destinations {
		var id string
		err := db.QueryRow(
			`INSERT INTO destinations (slug, name, description) VALUES ($1, $2, $3) RETURNING id`,
			d.Slug, d.Name, d.Description,
		).Scan(&id)
		if err != nil {
			logger.Fatalf("Failed to create destination %s: %v", d.Slug, err)
		}
		destinationIDs[d.Slug] = id
	}

	for _, p := range packages {
		_, err := db.Exec(
			`INSERT INTO packages (slug, title, description, images, price, duration, highlights, destination_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			p.Slug, p.Title, p.Description, pq.Array(p.Images),
			p.Price, p.Duration, pq.Array(p.Highlights), destinationIDs[p.Destination],
		)
		if err != nil {
			logger.Fatalf("Failed to create package %s: %v", p.Slug, err)
		}
	}

	logger.Infof("Seed data created: %d destinations, %d packages", len(destinations), len(packages))
}
