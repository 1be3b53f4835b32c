package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/Rakhulsr/go-marketplace/app/utils/calc"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type ENV struct {
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	Port          string
	AppAuthKey    string
	AppEncKey     string
	CSRFKey       string
	APP_ENV       string
	EmailHost     string
	EmailPort     string
	EmailUsername string
	EmailPassword string
	EmailFrom     string
	ShippingCost  string
	TaxRate       string
	LoyaltyPoint  string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        os.Getenv("DB_PORT"),
		Port:          os.Getenv("APP_PORT"),
		AppAuthKey:    os.Getenv("APP_AUTH_KEY"),
		AppEncKey:     os.Getenv("APP_ENC_KEY"),
		CSRFKey:       os.Getenv("CSRF_KEY"),
		APP_ENV:       os.Getenv("APP_ENV"),
		EmailHost:     os.Getenv("EMAIL_HOST"),
		EmailPort:     os.Getenv("EMAIL_PORT"),
		EmailUsername: os.Getenv("EMAIL_USERNAME"),
		EmailPassword: os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:     os.Getenv("EMAIL_FROM"),
		ShippingCost:  os.Getenv("SHIPPING_COST"),
		TaxRate:       os.Getenv("TAX_RATE"),
		LoyaltyPoint:  os.Getenv("LOYALTY_POINT_DIVISOR"),
	}

}

var LoadENV = LoadEnv()

func (e ENV) IsProduction() bool {
	return e.APP_ENV == "production"
}

// Pricing builds the checkout pricing knobs, keeping the defaults for any
// value that is unset or malformed.
func (e ENV) Pricing() calc.Pricing {
	pricing := calc.DefaultPricing()

	if e.ShippingCost != "" {
		if v, err := decimal.NewFromString(e.ShippingCost); err == nil && !v.IsNegative() {
			pricing.ShippingCost = v
		} else {
			log.Printf("Config.Pricing: ignoring invalid SHIPPING_COST %q", e.ShippingCost)
		}
	}

	if e.TaxRate != "" {
		if v, err := decimal.NewFromString(e.TaxRate); err == nil && !v.IsNegative() {
			pricing.TaxRate = v
		} else {
			log.Printf("Config.Pricing: ignoring invalid TAX_RATE %q", e.TaxRate)
		}
	}

	if e.LoyaltyPoint != "" {
		if v, err := strconv.ParseInt(e.LoyaltyPoint, 10, 64); err == nil {
			pricing.LoyaltyDivisor = v
		} else {
			log.Printf("Config.Pricing: ignoring invalid LOYALTY_POINT_DIVISOR %q", e.LoyaltyPoint)
		}
	}

	return pricing
}
