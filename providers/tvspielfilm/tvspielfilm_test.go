package tvspielfilm

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/repr"

	"github.com/teleguide/teleguide/models"
	"github.com/teleguide/teleguide/net/http/httptest"
	"github.com/teleguide/teleguide/providers"
)

// writeSprite produces a sprite of tiles shaded by their index, so
// tests can tell which tile ended up on which channel.
func writeSprite(t *testing.T, tiles int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, tiles*iconSize))
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < iconSize; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(y / iconSize), G: 0x40, B: 0x80, A: 0xFF})
		}
	}
	name := filepath.Join(t.TempDir(), "sprite.png")
	f, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return name
}

// testProvider wires the provider to local files: the listing page,
// the sprite and the detail pages named after their url slug.
func testProvider(t *testing.T, listing string, sprite string) *TVSpielfilm {
	t.Helper()
	ht := httptest.New(httptest.WithURLToFile(func(u string) string {
		switch {
		case u == iconsURL:
			return sprite
		case u == listingURL:
			return filepath.Join("testdata", listing)
		case strings.Contains(u, "/sendung/"):
			slug := u[strings.LastIndex(u, "/")+1:]
			if i := strings.IndexByte(slug, ','); i >= 0 {
				slug = slug[:i]
			}
			return filepath.Join("testdata", slug+".html")
		}
		return filepath.Join("testdata", "no-such-page")
	}))
	return New(withGetter(ht))
}

func Test_Registered(t *testing.T) {
	if _, ok := providers.Get("tvspielfilm"); !ok {
		t.Error("the provider did not register itself")
	}
}

func Test_GetProgram(t *testing.T) {
	p := testProvider(t, "abends.html", writeSprite(t, len(iconOrder)))

	program, err := p.GetProgram(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if program.Len() != 5 {
		t.Fatalf("program has %d entries, want 5", program.Len())
	}

	wantChannels := []string{"Das Erste", "ZDF", "WELT", "ARTE", "RTL"}
	wantMovies := []models.Movie{
		models.NewMovieBuilder("Heat").Year(1995).Genre("Thriller").Division("Spielfilm").Movie(),
		models.NewMovieBuilder("Der Alte").Year(2021).Genre("Krimiserie").Division("Serie").Movie(),
		models.NewMovieBuilder("Spacetime").Division("Doku").Movie(),
		models.NewMovieBuilder("Ronin").Year(1998).Genre("Actionthriller").Division("").Movie(),
		models.NewMovieBuilder("Die Verurteilten").Year(1994).Genre("Drama").Division("Spielfilm").Movie(),
	}

	for i := range wantMovies {
		e := program.At(i)
		if e.Channel.Name != wantChannels[i] {
			t.Errorf("entry %d channel = %q, want %q", i, e.Channel.Name, wantChannels[i])
		}
		if e.Movie != wantMovies[i] {
			t.Errorf("entry %d movie = %s, want %s", i, repr.String(e.Movie), repr.String(wantMovies[i]))
		}
	}

	t.Run("channels of the sprite carry their own logo", func(t *testing.T) {
		for _, e := range program.Entries() {
			if e.Channel.Name == "WELT" {
				if e.Channel.Icon != nil {
					t.Errorf("channel %q should have no icon", e.Channel.Name)
				}
				continue
			}
			if e.Channel.Icon == nil {
				t.Errorf("channel %q has no icon", e.Channel.Name)
				continue
			}
			if !e.Channel.Icon.Rect.Eq(image.Rect(0, 0, iconSize, iconSize)) {
				t.Errorf("channel %q icon bounds = %v", e.Channel.Name, e.Channel.Icon.Rect)
			}
			want := iconIndex(e.Channel.Name)
			if got := int(e.Channel.Icon.NRGBAAt(5, 5).R); got != want {
				t.Errorf("channel %q got tile %d, want %d", e.Channel.Name, got, want)
			}
		}
	})

	t.Run("detail pages are remembered for linked movies", func(t *testing.T) {
		if len(p.urls) != 4 {
			t.Fatalf("url cache has %d entries, want 4", len(p.urls))
		}
		want := "https://www.tvspielfilm.de/tv-programm/sendung/heat,66a1b2.html"
		if got := p.urls[wantMovies[0]]; got != want {
			t.Errorf("cached url = %q, want %q", got, want)
		}
		if _, ok := p.urls[wantMovies[2]]; ok {
			t.Error("a movie without link should not be cached")
		}
	})
}

func Test_GetProgramEmptyListing(t *testing.T) {
	p := testProvider(t, "abends_empty.html", writeSprite(t, len(iconOrder)))

	program, err := p.GetProgram(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if program.Len() != 0 {
		t.Errorf("program has %d entries, want none", program.Len())
	}
}

func Test_GetProgramBrokenRow(t *testing.T) {
	p := testProvider(t, "abends_broken.html", writeSprite(t, len(iconOrder)))

	program, err := p.GetProgram(context.Background())
	if !errors.Is(err, providers.ErrParsingWebsite) {
		t.Errorf("GetProgram() error = %v, want ErrParsingWebsite", err)
	}
	if program != nil {
		t.Errorf("GetProgram() = %s, want no program at all", repr.String(program))
	}
}

func Test_GetProgramListingUnreachable(t *testing.T) {
	p := testProvider(t, "no-such-listing.html", writeSprite(t, len(iconOrder)))

	_, err := p.GetProgram(context.Background())
	if !errors.Is(err, providers.ErrNetworking) {
		t.Errorf("GetProgram() error = %v, want ErrNetworking", err)
	}
}

func Test_GetProgramSpriteUnreachable(t *testing.T) {
	p := testProvider(t, "abends.html", filepath.Join(t.TempDir(), "no-such-sprite.webp"))

	_, err := p.GetProgram(context.Background())
	if !errors.Is(err, providers.ErrNetworking) {
		t.Errorf("GetProgram() error = %v, want ErrNetworking", err)
	}
}

func Test_GetProgramSpriteGarbage(t *testing.T) {
	name := filepath.Join(t.TempDir(), "sprite.webp")
	if err := os.WriteFile(name, []byte("this is not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := testProvider(t, "abends.html", name)

	_, err := p.GetProgram(context.Background())
	if !errors.Is(err, providers.ErrParsingWebsite) {
		t.Errorf("GetProgram() error = %v, want ErrParsingWebsite", err)
	}
}

func Test_GetMoreInformation(t *testing.T) {
	ctx := context.Background()
	p := testProvider(t, "abends.html", writeSprite(t, len(iconOrder)))
	program, err := p.GetProgram(ctx)
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	heat := program.At(0).Movie
	ronin := program.At(3).Movie

	t.Run("paragraphs of the detail page become the description", func(t *testing.T) {
		got := p.GetMoreInformation(ctx, heat)
		want := "Der Berufsverbrecher Neil McCauley plant mit seiner Crew einen letzten Coup.\n\n" +
			"Auf der anderen Seite des Gesetzes wartet der besessene Cop Vincent Hanna.\n\n"
		desc, ok := got.Description.Get()
		if !ok {
			t.Fatal("description is not set")
		}
		if desc != want {
			t.Errorf("description = %q, want %q", desc, want)
		}
		if got.Title != heat.Title || got.Year != heat.Year || got.Genre != heat.Genre {
			t.Errorf("more than the description changed: %s", repr.String(got))
		}
	})

	t.Run("a single paragraph keeps its separator", func(t *testing.T) {
		got := p.GetMoreInformation(ctx, ronin)
		want := "Ehemalige Agenten jagen in Paris einen silbernen Koffer.\n\n"
		if desc, _ := got.Description.Get(); desc != want {
			t.Errorf("description = %q, want %q", desc, want)
		}
	})

	t.Run("a movie never listed comes back unchanged", func(t *testing.T) {
		unknown := models.NewMovieBuilder("Nobody knows me").Movie()
		if got := p.GetMoreInformation(ctx, unknown); got != unknown {
			t.Errorf("movie = %s, want it unchanged", repr.String(got))
		}
	})

	t.Run("an enriched movie misses the cache", func(t *testing.T) {
		enriched := p.GetMoreInformation(ctx, heat)
		if got := p.GetMoreInformation(ctx, enriched); got != enriched {
			t.Errorf("movie = %s, want it unchanged", repr.String(got))
		}
	})

	t.Run("an unreachable detail page returns the movie unchanged", func(t *testing.T) {
		derAlte := program.At(1).Movie
		if got := p.GetMoreInformation(ctx, derAlte); got != derAlte {
			t.Errorf("movie = %s, want it unchanged", repr.String(got))
		}
	})
}

func Test_Clone(t *testing.T) {
	p := testProvider(t, "abends.html", writeSprite(t, len(iconOrder)))
	if _, err := p.GetProgram(context.Background()); err != nil {
		t.Fatalf("unexpected error %s", err)
	}

	c, ok := p.Clone().(*TVSpielfilm)
	if !ok {
		t.Fatal("Clone() did not return a TVSpielfilm")
	}
	if len(c.urls) != len(p.urls) {
		t.Fatalf("clone cache has %d entries, want %d", len(c.urls), len(p.urls))
	}

	extra := models.NewMovieBuilder("Extra").Movie()
	c.urls[extra] = "https://www.tvspielfilm.de/tv-programm/sendung/extra,0.html"
	if _, ok := p.urls[extra]; ok {
		t.Error("the clone shares its cache with the original")
	}
}

func Test_yearOf(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want int
		ok   bool
	}{
		{"classic tooltip", "Heat, USA 1995", 1995, true},
		{"country list", "Ronin, USA/GB 1998", 1998, true},
		{"no year", "Spacetime", 0, false},
		{"empty", "", 0, false},
		{"bare year", "1995", 1995, true},
		{"year not last", "Heat 1995 Uncut", 0, false},
		{"year too large", "Heat, USA 99999", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := yearOf(tt.s)
			if got != tt.want || ok != tt.ok {
				t.Errorf("yearOf(%q) = %d, %v, want %d, %v", tt.s, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func Test_firstField(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want string
	}{
		{"division with runtime", "Spielfilm 135 Min.", "Spielfilm"},
		{"single word", "Doku", "Doku"},
		{"only spaces", "   ", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstField(tt.s); got != tt.want {
				t.Errorf("firstField(%q) = %q, want %q", tt.s, got, tt.want)
			}
		})
	}
}
