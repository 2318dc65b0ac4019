package database

import (
	"log/slog"

	"atelier/internal/models"
)

// Seed populates an empty database with the sample gallery and shop
// catalog so a fresh install has something to show.
func (d *Database) Seed() error {
	count, err := d.CountPortfolio()
	if err != nil {
		return err
	}
	if count == 0 {
		slog.Info("seeding sample portfolio data")
		for i := range samplePortfolio {
			if err := d.CreatePortfolio(&samplePortfolio[i]); err != nil {
				return err
			}
		}
	}

	count, err = d.CountProducts()
	if err != nil {
		return err
	}
	if count == 0 {
		slog.Info("seeding sample product data")
		for i := range sampleProducts {
			if err := d.CreateProduct(&sampleProducts[i]); err != nil {
				return err
			}
		}
	}

	return nil
}

var samplePortfolio = []models.Portfolio{
	{
		Title:       "Brand Identity Design",
		Description: "Complete brand identity for tech startup including logo, color palette, and guidelines",
		ImageURL:    "https://images.unsplash.com/photo-1561070791-2526d30994b5?w=600",
		Category:    "branding",
		Featured:    true,
	},
	{
		Title:       "Modern Website UI",
		Description: "Clean and modern website interface design with focus on user experience",
		ImageURL:    "https://images.unsplash.com/photo-1467232004584-a241de8bcf5d?w=600",
		Category:    "web",
		Featured:    true,
	},
	{
		Title:       "Mobile App Design",
		Description: "iOS app interface design with intuitive navigation and beautiful animations",
		ImageURL:    "https://images.unsplash.com/photo-1512941937669-90a1b58e7e9c?w=600",
		Category:    "mobile",
		Featured:    true,
	},
	{
		Title:       "Minimalist Logo Design",
		Description: "Clean and memorable logo design for fashion brand with multiple variations",
		ImageURL:    "https://images.unsplash.com/photo-1558655146-9f40138edfeb?w=600",
		Category:    "logo",
		Featured:    true,
	},
	{
		Title:       "Event Poster Design",
		Description: "Eye-catching poster design for music festival with vibrant colors and typography",
		ImageURL:    "https://images.unsplash.com/photo-1541701494587-cb58502866ab?w=600",
		Category:    "print",
		Featured:    true,
	},
	{
		Title:       "Product Packaging",
		Description: "Elegant packaging design for premium skincare products with sustainable materials",
		ImageURL:    "https://images.unsplash.com/photo-1560472354-b33ff0c44a43?w=600",
		Category:    "packaging",
		Featured:    true,
	},
	{
		Title:       "Restaurant Branding",
		Description: "Complete branding package for upscale Italian restaurant including menu design",
		ImageURL:    "https://images.unsplash.com/photo-1414235077428-338989a2e8c0?w=600",
		Category:    "branding",
	},
	{
		Title:       "E-commerce Website",
		Description: "Full e-commerce website design with shopping cart and payment integration",
		ImageURL:    "https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=600",
		Category:    "web",
	},
}

var sampleProducts = []models.Product{
	{
		Name:           "Custom Portrait - Digital",
		Description:    "High-quality digital portrait created from your photo with attention to detail and personal style. Perfect for social media, prints, or gifts.",
		Price:          150.00,
		ImageURL:       "https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=400",
		Category:       "portrait",
		IsAvailable:    true,
		IsFeatured:     true,
		DigitalProduct: true,
		RequiresImage:  true,
		DeliveryTime:   "3-5 business days",
	},
	{
		Name:           "Custom Portrait - Oil Painting Style",
		Description:    "Traditional oil painting style portrait with rich textures and classical techniques. A timeless piece of art for your home.",
		Price:          350.00,
		ImageURL:       "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=400",
		Category:       "portrait",
		IsAvailable:    true,
		IsFeatured:     true,
		DigitalProduct: true,
		RequiresImage:  true,
		DeliveryTime:   "5-7 business days",
	},
	{
		Name:           "Pet Portrait",
		Description:    "Capture your beloved pet's personality in a beautiful watercolor style portrait. Perfect memorial or gift for pet lovers.",
		Price:          120.00,
		ImageURL:       "https://images.unsplash.com/photo-1537151625747-768eb6cf92b2?w=400",
		Category:       "portrait",
		IsAvailable:    true,
		IsFeatured:     true,
		DigitalProduct: true,
		RequiresImage:  true,
		DeliveryTime:   "3-5 business days",
	},
	{
		Name:           "Family Portrait Illustration",
		Description:    "Custom family illustration in a modern, stylized approach. Great for holiday cards or wall art.",
		Price:          200.00,
		ImageURL:       "https://images.unsplash.com/photo-1511895426328-dc8714191300?w=400",
		Category:       "portrait",
		IsAvailable:    true,
		DigitalProduct: true,
		RequiresImage:  true,
		DeliveryTime:   "5-7 business days",
	},
	{
		Name:           "Complete Logo Design Package",
		Description:    "Professional logo design with multiple concepts, revisions, and final files in all formats. Includes brand guidelines.",
		Price:          450.00,
		ImageURL:       "https://images.unsplash.com/photo-1558655146-9f40138edfeb?w=400",
		Category:       "design",
		IsAvailable:    true,
		DigitalProduct: true,
		DeliveryTime:   "1-2 weeks",
	},
	{
		Name:           "Business Card Design",
		Description:    "Professional business card design that makes a lasting impression. Includes print-ready files and multiple variations.",
		Price:          80.00,
		ImageURL:       "https://images.unsplash.com/photo-1551836022-deb4988cc6c0?w=400",
		Category:       "print",
		IsAvailable:    true,
		DigitalProduct: true,
		DeliveryTime:   "3-5 business days",
	},
	{
		Name:           "Brand Identity Package",
		Description:    "Complete brand identity including logo, color palette, typography, and brand guidelines. Perfect for startups and rebrands.",
		Price:          800.00,
		ImageURL:       "https://images.unsplash.com/photo-1586953208448-b95a79798f07?w=400",
		Category:       "design",
		IsAvailable:    true,
		DigitalProduct: true,
		DeliveryTime:   "2-3 weeks",
	},
	{
		Name:           "Website Design Mockup",
		Description:    "Custom website design mockup with multiple pages and responsive layouts. Includes design files and specifications.",
		Price:          600.00,
		ImageURL:       "https://images.unsplash.com/photo-1547658719-da2b51169166?w=400",
		Category:       "design",
		IsAvailable:    true,
		DigitalProduct: true,
		DeliveryTime:   "1-2 weeks",
	},
}
