// README: Provider catalog definitions; compiled-in defaults for every supported ride app.
package registry

// Provider describes one ride-hailing integration. Everything except
// Enabled is immutable presentation/launch metadata.
type Provider struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Icon            string `json:"icon"`
	Color           string `json:"color"`
	PackageID       string `json:"package_id"`
	DeepLinkScheme  string `json:"deep_link_scheme"`
	StoreListingURL string `json:"store_listing_url"`
	Enabled         bool   `json:"enabled"`
}

// defaultCatalog is the canonical provider list. Order here is the order
// every listing preserves; ids are stable persistence keys.
var defaultCatalog = []Provider{
	{
		ID:              "uber",
		Name:            "Uber",
		Icon:            "uber.png",
		Color:           "#000000",
		PackageID:       "com.ubercab",
		DeepLinkScheme:  "uber",
		StoreListingURL: "https://play.google.com/store/apps/details?id=com.ubercab",
		Enabled:         true,
	},
	{
		ID:              "99",
		Name:            "99",
		Icon:            "99.png",
		Color:           "#FFD700",
		PackageID:       "com.taxis99",
		DeepLinkScheme:  "taxis99",
		StoreListingURL: "https://play.google.com/store/apps/details?id=com.taxis99",
		Enabled:         true,
	},
	{
		ID:              "cabify",
		Name:            "Cabify",
		Icon:            "cabify.png",
		Color:           "#7145D6",
		PackageID:       "com.cabify.rider",
		DeepLinkScheme:  "cabify",
		StoreListingURL: "https://play.google.com/store/apps/details?id=com.cabify.rider",
		Enabled:         false,
	},
	{
		ID:              "bolt",
		Name:            "Bolt",
		Icon:            "bolt.png",
		Color:           "#34D186",
		PackageID:       "ee.mtakso.client",
		DeepLinkScheme:  "bolt",
		StoreListingURL: "https://play.google.com/store/apps/details?id=ee.mtakso.client",
		Enabled:         false,
	},
	{
		ID:              "indriver",
		Name:            "inDrive",
		Icon:            "indriver.png",
		Color:           "#A7E92F",
		PackageID:       "sinet.startup.inDriver",
		DeepLinkScheme:  "indriver",
		StoreListingURL: "https://play.google.com/store/apps/details?id=sinet.startup.inDriver",
		Enabled:         false,
	},
	{
		ID:              "taxirio",
		Name:            "Taxi.Rio",
		Icon:            "taxirio.png",
		Color:           "#0A74DA",
		PackageID:       "br.gov.rio.taxi.passenger",
		DeepLinkScheme:  "taxirio",
		StoreListingURL: "https://play.google.com/store/apps/details?id=br.gov.rio.taxi.passenger",
		Enabled:         false,
	},
}

// DefaultCatalog returns a fresh copy of the compiled-in provider list so
// callers can never mutate the canonical defaults.
func DefaultCatalog() []Provider {
	out := make([]Provider, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}

// Override is the persisted per-provider record; only the enabled flag is
// user state, everything else rehydrates from the catalog.
type Override struct {
	ID      string `json:"id"`
	Enabled bool   `json:"enabled"`
}
