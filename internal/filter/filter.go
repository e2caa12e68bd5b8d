// Package filter вычисляет видимое подмножество карточек по поиску, категориям и сложности.
package filter

import (
	"strings"
	"time"

	"Flashcards/internal/model"

	"golang.org/x/text/cases"
)

// folder приводит строки к ключу сравнения без учёта регистра (полный case folding,
// например конечная сигма совпадает с обычной). Caser не потокобезопасен,
// поэтому создаётся на каждый вызов.
type folder struct{ c cases.Caser }

func newFolder() folder { return folder{c: cases.Fold()} }

func (f folder) key(s string) string { return f.c.String(s) }

// Apply возвращает карточки, удовлетворяющие всем активным измерениям State.
// Порядок входа сохраняется, результат всегда новый срез.
func Apply(cards []model.Flashcard, st State) []model.Flashcard {
	f := newFolder()
	q := f.key(st.query())
	categories := make(map[string]struct{}, len(st.Categories))
	for _, c := range st.Categories {
		categories[f.key(c)] = struct{}{}
	}
	difficulties := make(map[int]struct{}, len(st.Difficulties))
	for _, d := range st.Difficulties {
		difficulties[d] = struct{}{}
	}

	res := make([]model.Flashcard, 0, len(cards))
	for _, c := range cards {
		if q != "" && !matchesSearch(f, c, q) {
			continue
		}
		if len(categories) > 0 {
			if _, ok := categories[f.key(c.Category)]; !ok {
				continue
			}
		}
		if len(difficulties) > 0 {
			if _, ok := difficulties[c.Difficulty]; !ok {
				continue
			}
		}
		res = append(res, c)
	}
	return res
}

// matchesSearch: q уже приведён через f.
func matchesSearch(f folder, c model.Flashcard, q string) bool {
	return strings.Contains(f.key(c.Question), q) ||
		strings.Contains(f.key(c.Answer), q) ||
		strings.Contains(f.key(c.Category), q)
}

// Categories возвращает различные категории в порядке первого появления.
// Категории, отличающиеся только регистром, схлопываются в первое встреченное написание.
func Categories(cards []model.Flashcard) []string {
	f := newFolder()
	seen := make(map[string]struct{}, len(cards))
	res := make([]string, 0)
	for _, c := range cards {
		if c.Category == "" {
			continue
		}
		key := f.key(c.Category)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		res = append(res, c.Category)
	}
	return res
}

// CountDue считает карточки, которые пора повторить.
func CountDue(cards []model.Flashcard, now time.Time, interval time.Duration) int {
	n := 0
	for _, c := range cards {
		if c.DueForReview(now, interval) {
			n++
		}
	}
	return n
}
