package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/stampcatalog/internal/testutil"
	pkgcatalog "github.com/HerbHall/stampcatalog/pkg/catalog"
	"github.com/HerbHall/stampcatalog/pkg/models"
)

func newTestPresenter(t *testing.T, baseOrigin string) *Presenter {
	t.Helper()
	schema, err := pkgcatalog.DefaultSchema()
	require.NoError(t, err)
	return NewPresenter(schema, baseOrigin)
}

func TestPresenter_FormatPrice(t *testing.T) {
	p := newTestPresenter(t, "")
	assert.Equal(t, "0.00", p.FormatPrice(models.Price{}))
	assert.Equal(t, "12.50", p.FormatPrice(models.NewPrice(12.5)))
	assert.Equal(t, "0.00", p.FormatPrice(models.NewPrice(0)))
}

func TestPresenter_Summary(t *testing.T) {
	p := newTestPresenter(t, "https://cdn.example.com")
	s := testutil.NewStamp(
		testutil.WithName("Inverted Jenny"),
		testutil.WithImage("/img/a.jpg||https://example.com/b.jpg||ftp://nope/c.jpg"),
		testutil.WithDescription("<p>Printed   in <b>1918</b>.</p>"),
	)

	got := p.Summary(&s)
	assert.Equal(t, "Inverted Jenny", got.Name)
	assert.Equal(t, "10.00", got.PriceDisplay)
	assert.Equal(t, "https://cdn.example.com/img/a.jpg", got.Image)
	assert.Equal(t, []string{"https://example.com/b.jpg"}, got.MoreImages)
	assert.Equal(t, "Printed in 1918.", got.Excerpt)
}

func TestPresenter_DetailSanitizes(t *testing.T) {
	p := newTestPresenter(t, "")
	s := testutil.NewStamp(testutil.WithDescription(
		`<p onclick="x()">Nice copy</p><script>alert(1)</script><a href="https://example.com">cert</a>`))

	got := p.Detail(&s)
	assert.NotContains(t, got.DescriptionHTML, "<script")
	assert.NotContains(t, got.DescriptionHTML, "onclick")
	assert.Contains(t, got.DescriptionHTML, "Nice copy")
	assert.Contains(t, got.DescriptionHTML, `rel="nofollow"`)
}

func TestPresenter_View(t *testing.T) {
	p := newTestPresenter(t, "")
	state := NewState(2)
	res := &Result{Total: 5, Limit: 2, HasMore: true, Items: testutil.Stamps(2)}

	v := p.View(state, res)
	assert.Equal(t, 5, v.Total)
	assert.Equal(t, 2, v.Shown)
	assert.True(t, v.HasMore)
	assert.Len(t, v.Items, 2)
	assert.Equal(t, state, v.State)
}

func TestDescriptionText(t *testing.T) {
	assert.Equal(t, "", descriptionText("   ", 10))
	assert.Equal(t, "plain text", descriptionText("plain \n text", 10))

	long := strings.Repeat("a", 20)
	got := descriptionText(long, 5)
	assert.Equal(t, "aaaaa…", got)
}
