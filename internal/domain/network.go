package domain

import (
	"encoding/json"
	"fmt"
	"slices"
)

// NetworksURL is the CityBikes endpoint listing every bike-sharing network.
const NetworksURL = "https://api.citybik.es/v2/networks"

// Network is a single bike-sharing system.
type Network struct {
	ID   string `json:"id" yaml:"id"`
	Href string `json:"href" yaml:"href"`
	Name string `json:"name" yaml:"name"`
}

// Networks is the top-level payload returned by the networks endpoint.
type Networks struct {
	Networks []Network `json:"networks" yaml:"networks"`
}

// SampleNetworks returns the placeholder shown when no real data is available.
func SampleNetworks() Networks {
	return Networks{Networks: []Network{{ID: "123", Href: "ABC", Name: "Test"}}}
}

// Equal reports whether both values hold the same networks in the same order.
func (n Networks) Equal(other Networks) bool {
	return slices.Equal(n.Networks, other.Networks)
}

// Len returns the number of networks.
func (n Networks) Len() int {
	return len(n.Networks)
}

// UnmarshalJSON requires every field to be present and string-typed.
// Unknown keys are ignored.
func (n *Network) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID   *string `json:"id"`
		Href *string `json:"href"`
		Name *string `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.ID == nil:
		return fmt.Errorf("network: missing key %q", "id")
	case raw.Href == nil:
		return fmt.Errorf("network: missing key %q", "href")
	case raw.Name == nil:
		return fmt.Errorf("network: missing key %q", "name")
	}

	*n = Network{ID: *raw.ID, Href: *raw.Href, Name: *raw.Name}
	return nil
}

// UnmarshalJSON requires the networks key to hold an array; null is rejected.
func (n *Networks) UnmarshalJSON(data []byte) error {
	var raw struct {
		Networks *[]Network `json:"networks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Networks == nil {
		return fmt.Errorf("networks: missing key %q", "networks")
	}

	n.Networks = *raw.Networks
	if n.Networks == nil {
		n.Networks = []Network{}
	}
	return nil
}
