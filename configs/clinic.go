package configs

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"luax.health/configs/configslog"

	"gopkg.in/yaml.v3"
)

// Clinic is the public profile rendered on every page and used as the
// inbox for staff notifications.
type Clinic struct {
	Name         string   `yaml:"name"`
	Address      string   `yaml:"address"`
	Phone        string   `yaml:"phone"`
	PhoneDisplay string   `yaml:"phone_display"`
	Email        string   `yaml:"email"`
	Hours        string   `yaml:"hours"`
	Services     []string `yaml:"services"`
}

// DefaultClinic is the LUAX Health Plus profile.
func DefaultClinic() *Clinic {
	return &Clinic{
		Name:         "LUAX Health Plus",
		Address:      "Kamenza 8 Church Road, Chililabombwe, Zambia",
		Phone:        "+260965318772",
		PhoneDisplay: "+260 965 318 772",
		Email:        "luaxhealth@gmail.com",
		Hours:        "24 hour services",
		Services: []string{
			"General Consultation (OPD)",
			"Observation / Short-term Care",
			"Pharmacy",
			"Laboratory & Diagnostics",
			"Ultrasound Scanning",
			"Dental Services",
			"Physiotherapy",
			"Telemedicine",
			"Mobile Clinics / Outreach",
			"AI Diagnostics",
		},
	}
}

// AddressURL links the address on Google Maps.
func (c *Clinic) AddressURL() string {
	return "https://maps.google.com/?q=" + url.QueryEscape(c.Address)
}

// LoadClinic reads a YAML profile from path. An empty path yields the
// default profile; fields missing from the file keep their defaults.
func LoadClinic(path string) (*Clinic, error) {
	clinic := DefaultClinic()
	if path == "" {
		return clinic, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			configslog.SLog.Warnf("Clinic profile %s not found, using defaults", path)
			return clinic, nil
		}
		return nil, fmt.Errorf("clinic profile read error: %w", err)
	}

	var fromFile Clinic
	if err := yaml.Unmarshal(raw, &fromFile); err != nil {
		return nil, fmt.Errorf("clinic profile parse error: %w", err)
	}
	clinic.merge(fromFile)
	configslog.SLog.Infof("Clinic profile loaded from %s (%d services)", path, len(clinic.Services))
	return clinic, nil
}

func (c *Clinic) merge(o Clinic) {
	if o.Name != "" {
		c.Name = o.Name
	}
	if o.Address != "" {
		c.Address = o.Address
	}
	if o.Phone != "" {
		c.Phone = o.Phone
	}
	if o.PhoneDisplay != "" {
		c.PhoneDisplay = o.PhoneDisplay
	}
	if o.Email != "" {
		c.Email = o.Email
	}
	if o.Hours != "" {
		c.Hours = o.Hours
	}
	if len(o.Services) > 0 {
		c.Services = o.Services
	}
}
