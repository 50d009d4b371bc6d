// Package assets maps the logical image paths stored on product rows to the
// URLs the bundled assets are actually served from.
package assets

// productImageMap translates stored logical paths to served asset URLs.
var productImageMap = map[string]string{
	"/src/assets/sona-masoori-rice.jpg": "/assets/products/sona-masoori-rice.jpg",
	"/src/assets/basmati-rice.jpg":      "/assets/products/basmati-rice.jpg",
	"/src/assets/turmeric.jpg":          "/assets/products/turmeric.jpg",
	"/src/assets/black-pepper.jpg":      "/assets/products/black-pepper.jpg",
	"/src/assets/green-cardamom.jpg":    "/assets/products/green-cardamom.jpg",
	"/src/assets/coffee-bean.jpg":       "/assets/products/coffee-bean.jpg",
	"/src/assets/tea.jpg":               "/assets/products/tea.jpg",
	"/src/assets/sugar.jpg":             "/assets/products/sugar.jpg",
	"/src/assets/wheat-flour.jpg":       "/assets/products/wheat-flour.jpg",
	"/src/assets/coconut-oil.jpg":       "/assets/products/coconut-oil.jpg",
}

// ResolveProductImage returns the served URL for a stored image path.
// Unknown paths are returned unchanged so externally hosted images pass
// straight through.
func ResolveProductImage(imageURL string) string {
	if resolved, ok := productImageMap[imageURL]; ok {
		return resolved
	}
	return imageURL
}
