package seed

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"boothtrack.in/internal/domain"
	"boothtrack.in/internal/model"
	"boothtrack.in/internal/service"
)

// EnsureAdminUser checks if any user exists, if not creates a default admin.
func EnsureAdminUser(db *gorm.DB, password string) {
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count > 0 {
		return
	}

	log.Println("Seed: No users found. Creating default 'admin' user...")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Seed: failed to hash bootstrap password: %v", err)
		return
	}
	admin := model.User{
		Username: "admin",
		Email:    "admin@example.com",
		Password: string(hashedPassword),
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Seed: failed to create admin user: %v", err)
	} else {
		log.Println("Seed: Created default user 'admin'")
	}
}

// SampleData populates an empty directory with a handful of employees so a
// fresh install has something to show. The first employee gets a linked
// account whose username is the mobile number, matching the mobile client's
// login convention.
func SampleData(ctx context.Context, db *gorm.DB) {
	var count int64
	db.Model(&model.Employee{}).Count(&count)
	if count > 0 {
		return
	}

	log.Println("Seed: Populating sample employees...")
	adminSvc := service.NewAdminService(db)

	samples := []model.Employee{
		{
			Name: "Rajesh Kumar", Designation: "Booth Level Officer", MobileNumber: "9876543210",
			OfficeName: "District Collector Office", OfficePlace: "Central Delhi",
			BoothNumber: "B001", BoothName: "Primary School ABC", BuildingName: "Government Primary School",
			BoothDuration: "7 AM - 6 PM", WardNumber: "W001", WardName: "Ward 1",
		},
		{
			Name: "Priya Sharma", Designation: "Polling Officer", MobileNumber: "9876543211",
			OfficeName: "Municipal Corporation", OfficePlace: "South Delhi",
			BoothNumber: "B002", BoothName: "Community Hall XYZ", BuildingName: "Community Center",
			BoothDuration: "7 AM - 6 PM", WardNumber: "W002", WardName: "Ward 2",
		},
		{
			Name: "Amit Singh", Designation: "Presiding Officer", MobileNumber: "9876543212",
			OfficeName: "Police Station", OfficePlace: "North Delhi",
			BoothNumber: "B003", BoothName: "High School DEF", BuildingName: "Government High School",
			BoothDuration: "6 AM - 8 PM", WardNumber: "W001", WardName: "Ward 1",
		},
		{
			Name: "Sunita Devi", Designation: "Booth Level Officer", MobileNumber: "9876543213",
			OfficeName: "IT Department", OfficePlace: "East Delhi",
			BoothNumber: "B004", BoothName: "Library Building", BuildingName: "Public Library",
			BoothDuration: "7 AM - 6 PM", WardNumber: "W003", WardName: "Ward 3",
		},
	}

	for i := range samples {
		if err := adminSvc.CreateEmployee(ctx, &samples[i]); err != nil {
			log.Printf("Seed: failed to create employee %q: %v", samples[i].Name, err)
		}
	}

	// Linked account for the first sample employee.
	if _, err := adminSvc.CreateUser(ctx, domain.CreateUserInput{
		Username:     samples[0].MobileNumber,
		Password:     "employee123",
		MobileNumber: samples[0].MobileNumber,
		Role:         model.RoleEmployee,
		EmpID:        samples[0].EmpID,
	}); err != nil {
		log.Printf("Seed: failed to create sample user: %v", err)
	}

	log.Println("Seed: Sample data ready.")
}
