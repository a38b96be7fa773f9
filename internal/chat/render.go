package chat

// ImagePlaceholder is shown in the image cell of a card whose product has no
// image URL.
const ImagePlaceholder = "🖼"

// Card is the display projection of one ProductResult.
type Card struct {
	Title string
	Price string

	// ImageLabel is the product's image URL, or ImagePlaceholder when the
	// result has none.
	ImageLabel string

	Source string
	Link   string
}

// RenderProducts projects product results into display cards. Pure: no
// mutation of the input, no I/O. A nil and an empty list render identically
// (no cards), and a product with neither image nor title still yields a
// complete, empty-looking card.
func RenderProducts(products []ProductResult) []Card {
	if len(products) == 0 {
		return nil
	}
	cards := make([]Card, 0, len(products))
	for _, p := range products {
		card := Card{
			Title:      p.Title,
			Price:      p.Price,
			ImageLabel: p.ImageURL,
			Source:     p.Source,
			Link:       p.Link,
		}
		if card.ImageLabel == "" {
			card.ImageLabel = ImagePlaceholder
		}
		cards = append(cards, card)
	}
	return cards
}
