package models

import "fmt"

// Icon identifies one of the icons the templates know how to draw.
type Icon int

const (
	IconUnknown Icon = iota
	IconCode
	IconServer
	IconDatabase
	IconLayout
	IconSmartphone
	IconGlobe
	IconMail
	IconPhone
	IconMapPin
	IconGitHub
	IconLinkedIn
	IconGitBranch
)

var iconNames = map[Icon]string{
	IconCode:       "code",
	IconServer:     "server",
	IconDatabase:   "database",
	IconLayout:     "layout",
	IconSmartphone: "smartphone",
	IconGlobe:      "globe",
	IconMail:       "mail",
	IconPhone:      "phone",
	IconMapPin:     "map-pin",
	IconGitHub:     "github",
	IconLinkedIn:   "linkedin",
	IconGitBranch:  "git-branch",
}

func (i Icon) String() string {
	if name, ok := iconNames[i]; ok {
		return name
	}
	return "unknown"
}

// ParseIcon returns the icon with the given name.
func ParseIcon(name string) (Icon, error) {
	for icon, n := range iconNames {
		if n == name {
			return icon, nil
		}
	}
	return IconUnknown, fmt.Errorf("unknown icon %q", name)
}

func (i Icon) MarshalText() ([]byte, error) {
	if _, ok := iconNames[i]; !ok {
		return nil, fmt.Errorf("unknown icon %d", int(i))
	}
	return []byte(i.String()), nil
}

func (i *Icon) UnmarshalText(b []byte) error {
	icon, err := ParseIcon(string(b))
	if err != nil {
		return err
	}
	*i = icon
	return nil
}
