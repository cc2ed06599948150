package generation

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/types"
)

// parsedResume is the flat view of a recovered generation response. Details
// carry the layout indices later used to compose sections.
type parsedResume struct {
	Title       string
	Summary     string
	Suggestions []string
	Details     []types.BulletDetail
}

// parseResume walks the recovered response and assigns stable ids and layout
// indices to every bullet. Bullets missing an id get a positional one;
// bullets missing a stretch score inherit the requested stretch level.
func parseResume(text string, defaultStretch int) parsedResume {
	parsed := parsedResume{
		Title:       gjson.Get(text, "title").String(),
		Summary:     strings.TrimSpace(gjson.Get(text, "summary").String()),
		Suggestions: stringList(gjson.Get(text, "suggestions")),
	}

	gjson.Get(text, "sections").ForEach(func(si, section gjson.Result) bool {
		name := strings.TrimSpace(section.Get("name").String())
		section.Get("bullets").ForEach(func(bi, bullet gjson.Result) bool {
			detail, ok := parseBullet(bullet, defaultStretch)
			if !ok {
				return true
			}
			if detail.ID == "" {
				detail.ID = fmt.Sprintf("b%d-%d", si.Int()+1, bi.Int()+1)
			}
			detail.Section = name
			detail.SectionIndex = int(si.Int())
			detail.BulletIndex = int(bi.Int())
			parsed.Details = append(parsed.Details, detail)
			return true
		})
		return true
	})
	return parsed
}

// parseBackfill extracts bullet details from a single-section backfill
// response. Positional "fix-N" ids fill in where the collaborator omitted
// one; section and layout indices are assigned by the caller.
func parseBackfill(text string, defaultStretch int) []types.BulletDetail {
	var details []types.BulletDetail
	gjson.Get(text, "bullets").ForEach(func(bi, bullet gjson.Result) bool {
		detail, ok := parseBullet(bullet, defaultStretch)
		if !ok {
			return true
		}
		if detail.ID == "" {
			detail.ID = fmt.Sprintf("fix-%d", bi.Int()+1)
		}
		details = append(details, detail)
		return true
	})
	return details
}

// parseBullet reads one bullet object. A bare string is accepted as the
// bullet text; anything without text is dropped.
func parseBullet(bullet gjson.Result, defaultStretch int) (types.BulletDetail, bool) {
	if bullet.Type == gjson.String {
		text := strings.TrimSpace(bullet.String())
		if text == "" {
			return types.BulletDetail{}, false
		}
		return types.BulletDetail{Text: text, Stretch: clampStretch(defaultStretch)}, true
	}
	if !bullet.IsObject() {
		return types.BulletDetail{}, false
	}

	text := strings.TrimSpace(bullet.Get("text").String())
	if text == "" {
		return types.BulletDetail{}, false
	}

	stretch := defaultStretch
	if s := bullet.Get("stretch"); s.Exists() {
		stretch = int(s.Int())
	}

	return types.BulletDetail{
		ID:        strings.TrimSpace(bullet.Get("id").String()),
		SnippetID: strings.TrimSpace(bullet.Get("snippet_id").String()),
		Text:      text,
		Stretch:   clampStretch(stretch),
		Metrics:   stringList(bullet.Get("metrics")),
	}, true
}

func clampStretch(stretch int) int {
	if stretch < 0 {
		return 0
	}
	if stretch > 3 {
		return 3
	}
	return stretch
}

func jsonGet(text, path string) gjson.Result {
	return gjson.Get(text, path)
}

// stringList flattens a JSON array into trimmed, non-empty strings.
func stringList(result gjson.Result) []string {
	if !result.IsArray() {
		return nil
	}
	var items []string
	result.ForEach(func(_, item gjson.Result) bool {
		if s := strings.TrimSpace(item.String()); s != "" {
			items = append(items, s)
		}
		return true
	})
	return items
}
