package filter

import "strings"

// State: текущий набор фильтров списка карточек.
// Значение неизменяемое: каждый With* возвращает новую копию.
// nil и пустой срез означают одно и то же: ограничения по измерению нет.
type State struct {
	Search       *string
	Categories   []string
	Difficulties []int
}

// WithSearch возвращает копию состояния с новым поисковым запросом (nil сбрасывает поиск).
func (s State) WithSearch(q *string) State {
	if q != nil {
		v := *q
		q = &v
	}
	s.Search = q
	return s
}

// WithCategories возвращает копию состояния с новым набором категорий.
func (s State) WithCategories(categories []string) State {
	s.Categories = append([]string(nil), categories...)
	return s
}

// WithDifficulties возвращает копию состояния с новым набором сложностей.
func (s State) WithDifficulties(difficulties []int) State {
	s.Difficulties = append([]int(nil), difficulties...)
	return s
}

// Cleared возвращает состояние без фильтров.
func (s State) Cleared() State {
	return State{}
}

// IsEmpty сообщает, что ни одно измерение фильтра не активно.
func (s State) IsEmpty() bool {
	return s.query() == "" && len(s.Categories) == 0 && len(s.Difficulties) == 0
}

// query возвращает обрезанный поисковый запрос или пустую строку, если поиск не активен.
func (s State) query() string {
	if s.Search == nil {
		return ""
	}
	return strings.TrimSpace(*s.Search)
}
