package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	pkgcatalog "github.com/HerbHall/stampcatalog/pkg/catalog"
	"github.com/HerbHall/stampcatalog/pkg/models"
)

// excerptLength caps the plain-text description shown in list views, in runes.
const excerptLength = 240

// ItemSummary is the list-view shape of a record.
type ItemSummary struct {
	Index            int          `json:"index"`
	Name             string       `json:"name"`
	CategoryID       string       `json:"category_id"`
	CatalogNumber    string       `json:"catalog_number"`
	Country          string       `json:"country"`
	Currency         string       `json:"currency"`
	Price            models.Price `json:"price"`
	PriceDisplay     string       `json:"price_display"`
	StampType        string       `json:"stamp_type"`
	Condition        string       `json:"condition"`
	StampFormat      string       `json:"stamp_format"`
	Centering        string       `json:"centering"`
	HasCertificate   string       `json:"has_certificate"`
	CertificateGrade string       `json:"certificate_grade"`
	Image            string       `json:"image,omitempty"`
	MoreImages       []string     `json:"more_images"`
	Excerpt          string       `json:"excerpt"`
}

// ItemDetail is the single-record shape, with every image and the
// sanitized description.
type ItemDetail struct {
	ItemSummary
	Images          []string `json:"images"`
	DescriptionHTML string   `json:"description_html"`
}

// ViewResponse is the response for the view endpoints.
type ViewResponse struct {
	Total   int           `json:"total"`
	Shown   int           `json:"shown"`
	Limit   int           `json:"limit"`
	HasMore bool          `json:"has_more"`
	State   State         `json:"state"`
	Items   []ItemSummary `json:"items"`
}

// Presenter turns records into response shapes.
type Presenter struct {
	schema     *pkgcatalog.Schema
	baseOrigin string
	printer    *message.Printer
	policy     *bluemonday.Policy
}

// NewPresenter creates a Presenter. baseOrigin, when set, rebases relative
// image paths.
func NewPresenter(schema *pkgcatalog.Schema, baseOrigin string) *Presenter {
	return &Presenter{
		schema:     schema,
		baseOrigin: baseOrigin,
		printer:    message.NewPrinter(language.English),
		policy:     newDescriptionPolicy(),
	}
}

func newDescriptionPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// FormatPrice renders a price with two decimals; an absent price renders
// as 0.00.
func (p *Presenter) FormatPrice(price models.Price) string {
	return p.printer.Sprintf("%.2f", price.OrZero())
}

// Summary builds the list-view shape of s.
func (p *Presenter) Summary(s *models.Stamp) ItemSummary {
	im := p.schema.ParseImages(s.Image, p.baseOrigin)
	return ItemSummary{
		Index:            s.Index,
		Name:             s.Name,
		CategoryID:       s.CategoryID,
		CatalogNumber:    s.CatalogNumber,
		Country:          s.Country,
		Currency:         s.Currency,
		Price:            s.Price,
		PriceDisplay:     p.FormatPrice(s.Price),
		StampType:        s.StampType,
		Condition:        s.Condition,
		StampFormat:      s.StampFormat,
		Centering:        s.Centering,
		HasCertificate:   s.HasCertificate,
		CertificateGrade: s.CertificateGrade,
		Image:            im.Primary,
		MoreImages:       im.More,
		Excerpt:          descriptionText(s.Description, excerptLength),
	}
}

// Detail builds the single-record shape of s.
func (p *Presenter) Detail(s *models.Stamp) ItemDetail {
	im := p.schema.ParseImages(s.Image, p.baseOrigin)
	return ItemDetail{
		ItemSummary:     p.Summary(s),
		Images:          im.All,
		DescriptionHTML: p.policy.Sanitize(s.Description),
	}
}

// View builds the response for a state and its result.
func (p *Presenter) View(state State, res *Result) ViewResponse {
	items := make([]ItemSummary, len(res.Items))
	for i := range res.Items {
		items[i] = p.Summary(&res.Items[i])
	}
	return ViewResponse{
		Total:   res.Total,
		Shown:   len(items),
		Limit:   res.Limit,
		HasMore: res.HasMore,
		State:   state,
		Items:   items,
	}
}

// descriptionText extracts whitespace-collapsed plain text from an HTML or
// plain description, truncated to max runes.
func descriptionText(desc string, max int) string {
	if strings.TrimSpace(desc) == "" {
		return ""
	}
	text := desc
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(desc)); err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:max])) + "…"
}
