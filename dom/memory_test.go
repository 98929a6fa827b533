package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDocumentQuery(t *testing.T) {
	t.Parallel()

	doc := NewMemoryDocument()
	el := doc.AddElement("#app")

	got, err := doc.Query("#app")
	require.NoError(t, err)
	assert.Same(t, el, got.(*Element))

	_, err = doc.Query("#missing")
	require.ErrorIs(t, err, ErrElementNotFound)
}

func TestMemoryDocumentDetachedElementIsNotQueryable(t *testing.T) {
	t.Parallel()

	doc := NewMemoryDocument()
	el := doc.AddElement("#app")
	el.Detach()

	_, err := doc.Query("#app")
	require.ErrorIs(t, err, ErrElementNotFound)

	// Re-adding the selector re-attaches the same element.
	again := doc.AddElement("#app")
	assert.Same(t, el, again)
	assert.True(t, again.Attached())
}

func TestMemoryDocumentRemoveElement(t *testing.T) {
	t.Parallel()

	doc := NewMemoryDocument()
	old := doc.AddElement("#app")
	old.SetHTML("<p>old</p>")

	doc.RemoveElement("#app")
	assert.False(t, old.Attached())

	fresh := doc.AddElement("#app")
	require.NotSame(t, old, fresh)
	assert.Equal(t, "", fresh.HTML())

	// Removing an unknown selector is a no-op.
	doc.RemoveElement("#ghost")
}

func TestMemoryDocumentReplaceElement(t *testing.T) {
	t.Parallel()

	doc := NewMemoryDocument()
	old := doc.AddElement("#app")
	old.SetHTML("<p>old</p>")

	fresh := doc.ReplaceElement("#app")
	require.NotSame(t, old, fresh)
	assert.False(t, old.Attached())
	assert.True(t, fresh.Attached())

	got, err := doc.Query("#app")
	require.NoError(t, err)
	assert.Same(t, fresh, got.(*Element))
}

func TestElementHTMLAndClear(t *testing.T) {
	t.Parallel()

	el := NewMemoryDocument().AddElement("#app")
	el.SetHTML("<p>hi</p>")
	assert.Equal(t, "<p>hi</p>", el.HTML())

	el.Clear()
	assert.Equal(t, "", el.HTML())
}

func TestElementVisibility(t *testing.T) {
	t.Parallel()

	el := NewMemoryDocument().AddElement("#spinner")
	assert.True(t, el.Visible())
	el.SetVisible(false)
	assert.False(t, el.Visible())
}

func TestMemoryDocumentClick(t *testing.T) {
	t.Parallel()

	doc := NewMemoryDocument()
	link := doc.AddElement("a.users")
	link.SetAttr(LinkAttr, "/users/42")
	doc.AddElement("a.plain")

	doc.Click("a.users")
	select {
	case path := <-doc.Navigations():
		assert.Equal(t, "/users/42", path)
	default:
		t.Fatal("expected a navigation from the marked link")
	}

	// Clicks on unmarked elements and unknown selectors deliver nothing.
	doc.Click("a.plain")
	doc.Click("a.ghost")
	select {
	case path := <-doc.Navigations():
		t.Fatalf("unexpected navigation %q", path)
	default:
	}
}

func TestMemoryDocumentOverlays(t *testing.T) {
	t.Parallel()

	doc := NewMemoryDocument()
	doc.ShowOverlay("<div>first</div>")
	doc.ShowOverlay("<div>second</div>")

	assert.Equal(t, []string{"<div>first</div>", "<div>second</div>"}, doc.Overlays())
}
