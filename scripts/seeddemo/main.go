package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/summitlink/internal/config"
	"github.com/summitlink/internal/db"
)

// 演示数据生成器：为本地开发填充一批覆盖所有类别与审核状态的联系人。
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("failed to initialize database:", err)
	}

	fmt.Println("seeding demo contacts...")
	created, err := seedDemoContacts()
	if err != nil {
		log.Fatal("failed to seed demo contacts:", err)
	}

	if created == 0 {
		fmt.Println("contacts already exist, nothing seeded")
		return
	}
	fmt.Printf("seeded %d demo contacts\n", created)
}

// seedDemoContacts 在联系人表为空时写入演示数据，返回创建的行数。
// 演示数据覆盖三个类别，并同时包含待审、已通过与已驳回三种状态。
func seedDemoContacts() (int, error) {
	var count int64
	if err := db.DB.Model(&db.Contact{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	contacts := buildDemoContacts()
	for i := range contacts {
		if err := db.DB.Create(&contacts[i]).Error; err != nil {
			return 0, err
		}
	}
	return len(contacts), nil
}

func buildDemoContacts() []db.Contact {
	return []db.Contact{
		{
			Category: db.CategoryOrganizer,
			Name:     "Maya Lindqvist",
			Title:    "Program Chair",
			Bio:      "Runs the summit program committee and the volunteer crew.\n\n- 10 years of event operations\n- Based in Stockholm",
			Location: "Stockholm, Sweden",
			Email:    "maya@example.com",
			LinkedIn: "https://linkedin.com/in/maya-lindqvist",
			Phone:    "+46701234567",
			Approved: true,
		},
		{
			Category: db.CategoryOrganizer,
			Name:     "Tomás Ferreira",
			Title:    "Sponsorship Lead",
			Bio:      "Keeps the sponsors happy and the budget balanced.",
			Location: "Lisbon, Portugal",
			Email:    "tomas@example.com",
			Website:  "https://example.com/tomas",
		},
		{
			Category:  db.CategorySpeaker,
			Name:      "Priya Raman",
			Title:     "Staff Engineer, Orbital Systems",
			Bio:       "Speaking about **resilient ingestion pipelines** and the lessons from three production incidents.",
			Location:  "Bengaluru, India",
			Twitter:   "priyar",
			Instagram: "https://instagram.com/priya.builds",
			Phone:     "+14155552671",
			Approved:  true,
		},
		{
			Category: db.CategorySpeaker,
			Name:     "Jonas Weber",
			Title:    "Security Researcher",
			Bio:      "Talk proposal still under review by the program committee.",
			Location: "Berlin, Germany",
			Email:    "jonas@example.com",
		},
		{
			Category: db.CategoryDelegate,
			Name:     "Aisha Bello",
			Title:    "Platform Engineer",
			Bio:      "First time attending, interested in the storage track.",
			Location: "Lagos, Nigeria",
			YouTube:  "https://youtube.com/@aishabuilds",
			Approved: true,
		},
		{
			Category: db.CategoryDelegate,
			Name:     "Spam Entry",
			Title:    "Definitely Real Person",
			Bio:      "Buy cheap watches.",
			Rejected: true,
		},
	}
}
