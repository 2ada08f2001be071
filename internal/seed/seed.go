package seed

import (
	"time"

	"plateguard-backend/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var defaultCategories = []model.Category{
	{Name: "Vegetables", Description: "Fresh vegetables and greens"},
	{Name: "Fruits", Description: "Fresh and seasonal fruits"},
	{Name: "Meat", Description: "Beef, pork and poultry"},
	{Name: "Seafood", Description: "Fish and shellfish"},
	{Name: "Dairy", Description: "Milk, cheese and eggs"},
	{Name: "Grains", Description: "Rice, pasta and flour"},
	{Name: "Beverages", Description: "Drinks and juices"},
	{Name: "Condiments", Description: "Sauces, spices and seasonings"},
}

// DemoAccount describes a seeded login; the plain password is returned
// so the demo response can show it.
type DemoAccount struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// DemoResult summarizes what the demo setup created.
type DemoResult struct {
	Accounts   []DemoAccount `json:"accounts"`
	Categories int           `json:"categories"`
	Items      int           `json:"items"`
	Wastes     int           `json:"wasteRecords"`
}

// Baseline ensures the default categories and an admin account exist.
// Safe to run repeatedly; existing rows are left alone.
func Baseline(db *gorm.DB) error {
	for i := range defaultCategories {
		c := defaultCategories[i]
		err := db.Where("name = ?", c.Name).FirstOrCreate(&c, model.Category{Name: c.Name, Description: c.Description}).Error
		if err != nil {
			return err
		}
	}

	_, err := ensureUser(db, "admin@plateguard.com", "admin123", "Admin", model.RoleAdmin)
	if err != nil {
		return err
	}

	log.Info().Msg("baseline data seeded")
	return nil
}

// Demo provisions a full sandbox: three accounts across the roles, the
// default categories, sample stock and a month of waste history.
// Idempotent; rerunning tops up what is missing.
func Demo(db *gorm.DB) (*DemoResult, error) {
	if err := Baseline(db); err != nil {
		return nil, err
	}

	accounts := []struct {
		email, password, name, role string
	}{
		{"admin@plateguard.com", "admin123", "Admin", model.RoleAdmin},
		{"manager@plateguard.com", "manager123", "Manager", model.RoleManager},
		{"staff@plateguard.com", "staff123", "Staff", model.RoleUser},
	}

	result := &DemoResult{Categories: len(defaultCategories)}
	var owner *model.User
	for _, a := range accounts {
		user, err := ensureUser(db, a.email, a.password, a.name, a.role)
		if err != nil {
			return nil, err
		}
		if owner == nil {
			owner = user
		}
		result.Accounts = append(result.Accounts, DemoAccount{Email: a.email, Password: a.password, Role: a.role})
	}

	items, err := seedItems(db, owner)
	if err != nil {
		return nil, err
	}
	result.Items = len(items)

	wastes, err := seedWaste(db, owner, items)
	if err != nil {
		return nil, err
	}
	result.Wastes = wastes

	log.Info().Int("items", result.Items).Int("wasteRecords", result.Wastes).Msg("demo data seeded")
	return result, nil
}

func ensureUser(db *gorm.DB, email, password, name, role string) (*model.User, error) {
	var user model.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	user = model.User{Email: email, Name: name, Role: role}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func seedItems(db *gorm.DB, owner *model.User) ([]model.InventoryItem, error) {
	in := func(days int) *time.Time {
		t := time.Now().AddDate(0, 0, days)
		return &t
	}

	samples := []struct {
		name, category, unit string
		quantity, price      float64
		expiry               *time.Time
	}{
		{"Tomatoes", "Vegetables", "kg", 25, 3.50, in(5)},
		{"Lettuce", "Vegetables", "kg", 8, 2.20, in(2)},
		{"Apples", "Fruits", "kg", 40, 2.80, in(14)},
		{"Chicken Breast", "Meat", "kg", 15, 9.50, in(4)},
		{"Ground Beef", "Meat", "kg", 6, 11.00, in(3)},
		{"Salmon Fillet", "Seafood", "kg", 5, 22.00, in(2)},
		{"Milk", "Dairy", "l", 30, 1.40, in(7)},
		{"Cheddar Cheese", "Dairy", "kg", 12, 8.90, in(21)},
		{"Rice", "Grains", "kg", 80, 1.80, nil},
		{"Olive Oil", "Condiments", "l", 18, 7.50, nil},
	}

	items := make([]model.InventoryItem, 0, len(samples))
	for _, s := range samples {
		var category model.Category
		if err := db.Where("name = ?", s.category).First(&category).Error; err != nil {
			return nil, err
		}

		var item model.InventoryItem
		err := db.Where("name = ? AND user_id = ?", s.name, owner.ID).First(&item).Error
		if err == gorm.ErrRecordNotFound {
			item = model.InventoryItem{
				Name:       s.name,
				Quantity:   s.quantity,
				Unit:       s.unit,
				Price:      s.price,
				ExpiryDate: s.expiry,
				CategoryID: category.ID,
				UserID:     owner.ID,
			}
			err = db.Create(&item).Error
		}
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func seedWaste(db *gorm.DB, owner *model.User, items []model.InventoryItem) (int, error) {
	if len(items) < 4 {
		return 0, nil
	}

	var existing int64
	if err := db.Model(&model.WasteRecord{}).Where("user_id = ?", owner.ID).Count(&existing).Error; err != nil {
		return 0, err
	}
	if existing > 0 {
		return int(existing), nil
	}

	samples := []struct {
		item     model.InventoryItem
		quantity float64
		reason   model.WasteReason
		daysAgo  int
		notes    string
	}{
		{items[0], 3, model.ReasonExpired, 2, "Found soft spots during prep"},
		{items[1], 2, model.ReasonDamaged, 5, "Crushed in delivery"},
		{items[3], 1.5, model.ReasonPreparation, 9, "Trimmings"},
		{items[2], 4, model.ReasonOverstock, 20, "Over-ordered for event"},
	}

	created := 0
	for _, s := range samples {
		record := model.WasteRecord{
			ItemID:   s.item.ID,
			UserID:   owner.ID,
			Quantity: s.quantity,
			Reason:   s.reason,
			Cost:     s.quantity * s.item.Price,
			Date:     time.Now().AddDate(0, 0, -s.daysAgo),
			Notes:    s.notes,
		}
		if err := db.Create(&record).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
