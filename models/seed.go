package models

import (
	"log"

	"gorm.io/gorm"
)

// SeedMedicines loads the starter catalog when the medicines table is empty.
func SeedMedicines(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Medicine{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	medicines := []Medicine{
		{
			Name: "Aspirin", NameAr: "أسبرين",
			Category: "Pain Reliever", CategoryAr: "مسكن للألم",
			Description:   "Used to reduce fever, pain, and inflammation. Low doses prevent blood clots.",
			DescriptionAr: "يستخدم لتقليل الحمى والألم والالتهابات. الجرعات المنخفضة تمنع تكون الجلطات الدموية.",
			Price:         5.99, Stock: 100, ImageURL: "aspirin.png",
		},
		{
			Name: "Ibuprofen", NameAr: "إيبوبروفين",
			Category: "Pain Reliever", CategoryAr: "مسكن للألم",
			Description:   "Effective in reducing fever and relieving pain from various conditions.",
			DescriptionAr: "فعال في تقليل الحمى وتخفيف الألم من الحالات المختلفة.",
			Price:         7.99, Stock: 80, ImageURL: "ibuprofen.png",
		},
		{
			Name: "Paracetamol", NameAr: "باراسيتامول",
			Category: "Pain Reliever", CategoryAr: "مسكن للألم",
			Description:   "Relieves pain and reduces fever, suitable for those who cannot take NSAIDs.",
			DescriptionAr: "يخفف الألم ويقلل الحرارة، مناسب لمن لا يستطيعون تناول الأدوية المضادة للالتهابات غير الستيرويدية.",
			Price:         4.50, Stock: 120, ImageURL: "paracetamol.png",
		},
		{
			Name: "Amoxicillin", NameAr: "أموكسيسيلين",
			Category: "Antibiotic", CategoryAr: "مضاد حيوي",
			Description:   "Used to treat a variety of bacterial infections.",
			DescriptionAr: "يستخدم لعلاج مجموعة متنوعة من الالتهابات البكتيرية.",
			Price:         12.00, Stock: 95, ImageURL: "amoxicillin.png",
		},
		{
			Name: "Lisinopril", NameAr: "ليزينوبريل",
			Category: "Blood Pressure Medication", CategoryAr: "دواء ضغط الدم",
			Description:   "Treats high blood pressure and heart failure, improves survival after heart attack.",
			DescriptionAr: "يعالج ارتفاع ضغط الدم وفشل القلب، يحسن البقاء على قيد الحياة بعد النوبة القلبية.",
			Price:         15.00, Stock: 60, ImageURL: "lisinopril.png",
		},
		{
			Name: "Metformin", NameAr: "ميتفورمين",
			Category: "Diabetes Medication", CategoryAr: "دواء السكري",
			Description:   "Improves blood sugar control in people with type 2 diabetes.",
			DescriptionAr: "يحسن التحكم في نسبة السكر في الدم لدى مرضى السكري من النوع الثاني.",
			Price:         9.25, Stock: 75, ImageURL: "metformin.png",
		},
	}

	if err := db.Create(&medicines).Error; err != nil {
		return err
	}

	// Pain relievers substitute for each other when one runs out.
	links := map[string]string{
		"Aspirin":     "Ibuprofen",
		"Ibuprofen":   "Paracetamol",
		"Paracetamol": "Aspirin",
	}
	byName := make(map[string]uint, len(medicines))
	for _, m := range medicines {
		byName[m.Name] = m.ID
	}
	for name, alt := range links {
		if err := db.Model(&Medicine{}).Where("name = ?", name).
			Update("alternative_medicine_id", byName[alt]).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d medicines", len(medicines))
	return nil
}
