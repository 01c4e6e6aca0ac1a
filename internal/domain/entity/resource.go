package entity

// ResourceShape distinguishes collection resources from single-record
// settings blobs such as the about-us content.
type ResourceShape int

const (
	// ShapeCollection supports list/retrieve/create/update/patch/delete.
	ShapeCollection ResourceShape = iota
	// ShapeSingleton supports get and update/patch only.
	ShapeSingleton
)

// Resource maps one admin route segment to its upstream API path.
type Resource struct {
	// Name is the route segment under /api, e.g. "product-categories".
	Name string
	// UpstreamPath is the backend collection path, always slash-terminated.
	UpstreamPath string
	Shape        ResourceShape
}

// Catalog lists every back-office resource the gateway proxies. The
// upstream paths mirror the platform API as-is, inconsistencies included.
func Catalog() []Resource {
	return []Resource{
		{Name: "users", UpstreamPath: "/users/"},
		{Name: "customers", UpstreamPath: "/customers/"},
		{Name: "addresses", UpstreamPath: "/addresses/"},
		{Name: "orders", UpstreamPath: "/order/orders/"},
		{Name: "delivery-charges", UpstreamPath: "/order/delivery-charges/"},
		{Name: "products", UpstreamPath: "/api/v1/product/products/"},
		{Name: "product-categories", UpstreamPath: "/product/categories/"},
		{Name: "product-items", UpstreamPath: "/product/product-items/"},
		{Name: "colors", UpstreamPath: "/product/colors/"},
		{Name: "warehouses", UpstreamPath: "/warehouse/houses/"},
		{Name: "stocks", UpstreamPath: "/warehouse/stocks/"},
		{Name: "sliders", UpstreamPath: "/site/sliders/"},
		{Name: "brand-items", UpstreamPath: "/site/brand-items/"},
		{Name: "contact-requests", UpstreamPath: "/site/contact-requests/"},
		{Name: "social-media", UpstreamPath: "/site/social-media/"},
		{Name: "about-us", UpstreamPath: "/site/about-us/", Shape: ShapeSingleton},
		{Name: "main-site", UpstreamPath: "/site/mainsite/", Shape: ShapeSingleton},
	}
}
