// Package viewstate хранит состояние экрана карточек для клиента: полный набор,
// текущий фильтр и видимое подмножество. Подписчики получают снимок состояния
// синхронно после каждого изменения.
package viewstate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"Flashcards/internal/cli/repo"
	"Flashcards/internal/filter"
	"Flashcards/internal/model"

	"go.uber.org/zap"
)

// ErrClosed holder закрыт, операции больше не выполняются.
var ErrClosed = errors.New("view state closed")

// Remote доступ к карточкам пользователя на сервере.
type Remote interface {
	List(ctx context.Context, st filter.State) ([]model.Flashcard, error)
	Get(ctx context.Context, id string) (*model.Flashcard, error)
	Add(ctx context.Context, card model.Flashcard) (string, error)
	Update(ctx context.Context, card model.Flashcard) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// State снимок состояния для отображения.
type State struct {
	Visible      []model.Flashcard
	Current      *model.Flashcard
	Loading      bool
	Error        string
	Success      string
	Categories   []string
	Total        int
	DueForReview int
	Filter       filter.State
}

// Options параметры holder.
type Options struct {
	// RequestTimeout ограничивает каждый вызов Remote; 0: без ограничения.
	RequestTimeout time.Duration
	// ReviewInterval через сколько карточка снова к повторению.
	ReviewInterval time.Duration
	Logger         *zap.SugaredLogger
}

type subscriber struct {
	id int
	fn func(State)
}

// Holder управляет состоянием одного пользователя.
// Вызовы Remote выполняются строго по очереди. Фильтры и сброс сообщений меняют
// состояние сразу и не ждут сетевых вызовов. Наблюдатели вызываются синхронно
// и не должны вызывать изменяющие методы holder.
type Holder struct {
	opMu  sync.Mutex // сериализует вызовы Remote
	pubMu sync.Mutex // порядок снимков у наблюдателей совпадает с порядком изменений

	stateMu sync.Mutex
	all     []model.Flashcard
	state   State

	subMu  sync.Mutex
	subs   []subscriber
	nextID int

	remote Remote
	cache  repo.FlashcardCache
	opts   Options
	now    func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	closed atomic.Bool
}

// New создаёт holder. cache может быть nil: тогда при ошибке сервера показывать нечего.
func New(remote Remote, cache repo.FlashcardCache, opts Options) *Holder {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Holder{
		remote: remote,
		cache:  cache,
		opts:   opts,
		now:    func() time.Time { return time.Now().UTC() },
		ctx:    ctx,
		cancel: cancel,
		state:  State{Visible: []model.Flashcard{}, Categories: []string{}},
	}
}

// Subscribe добавляет наблюдателя. Возвращает функцию отписки.
func (h *Holder) Subscribe(fn func(State)) (unsubscribe func()) {
	h.subMu.Lock()
	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, subscriber{id: id, fn: fn})
	h.subMu.Unlock()

	return func() {
		h.subMu.Lock()
		defer h.subMu.Unlock()
		for i, s := range h.subs {
			if s.id == id {
				h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
				return
			}
		}
	}
}

// Snapshot возвращает текущее состояние.
func (h *Holder) Snapshot() State {
	h.stateMu.Lock()
	defer h.stateMu.Unlock()
	return copyState(h.state)
}

// Close отменяет вызовы в полёте. После Close наблюдатели больше не вызываются.
func (h *Holder) Close() {
	if h.closed.CompareAndSwap(false, true) {
		h.cancel()
	}
}

// update меняет состояние под блокировкой и уведомляет наблюдателей.
func (h *Holder) update(fn func(st *State)) {
	h.pubMu.Lock()
	defer h.pubMu.Unlock()
	h.stateMu.Lock()
	fn(&h.state)
	snap := copyState(h.state)
	h.stateMu.Unlock()
	h.publish(snap)
}

func (h *Holder) publish(snap State) {
	if h.closed.Load() {
		return
	}
	h.subMu.Lock()
	subs := make([]subscriber, len(h.subs))
	copy(subs, h.subs)
	h.subMu.Unlock()

	for _, s := range subs {
		s.fn(snap)
	}
}

// recompute пересчитывает производные поля. Вызывается с захваченным stateMu.
func (h *Holder) recompute(st *State) {
	st.Visible = filter.Apply(h.all, st.Filter)
	st.Categories = filter.Categories(h.all)
	st.Total = len(h.all)
	st.DueForReview = filter.CountDue(h.all, h.now(), h.opts.ReviewInterval)
}

// call готовит контекст вызова Remote: таймаут и отмена по Close.
func (h *Holder) call(ctx context.Context) (context.Context, context.CancelFunc) {
	var cctx context.Context
	var cancel context.CancelFunc
	if h.opts.RequestTimeout > 0 {
		cctx, cancel = context.WithTimeout(ctx, h.opts.RequestTimeout)
	} else {
		cctx, cancel = context.WithCancel(ctx)
	}
	stop := context.AfterFunc(h.ctx, cancel)
	return cctx, func() {
		stop()
		cancel()
	}
}

func (h *Holder) begin() error {
	if h.closed.Load() {
		return ErrClosed
	}
	h.update(func(st *State) { st.Loading = true })
	return nil
}

// Load загружает полный набор с сервера и пересчитывает видимое подмножество.
// При ошибке сервера показывается последний набор из локального кеша.
func (h *Holder) Load(ctx context.Context) error {
	h.opMu.Lock()
	defer h.opMu.Unlock()
	if err := h.begin(); err != nil {
		return err
	}
	return h.load(ctx)
}

func (h *Holder) load(ctx context.Context) error {
	cctx, done := h.call(ctx)
	cards, err := h.remote.List(cctx, filter.State{})
	done()

	if err != nil {
		h.opts.Logger.Warnw("load flashcards failed", "error", err)
		cached := h.fromCache()
		h.update(func(st *State) {
			if cached != nil {
				h.all = cached
			}
			st.Loading = false
			st.Error = fmt.Sprintf("Failed to load flashcards: %v", err)
			h.recompute(st)
		})
		return err
	}

	if h.cache != nil {
		if cerr := h.cache.Replace(cards); cerr != nil {
			h.opts.Logger.Warnw("cache refresh failed", "error", cerr)
		}
	}
	h.update(func(st *State) {
		h.all = cards
		st.Loading = false
		st.Error = ""
		h.recompute(st)
	})
	return nil
}

func (h *Holder) fromCache() []model.Flashcard {
	if h.cache == nil {
		return nil
	}
	cached, err := h.cache.List()
	if err != nil {
		h.opts.Logger.Warnw("read cache failed", "error", err)
		return nil
	}
	return cached
}

// fail фиксирует ошибку операции и снимает признак загрузки.
func (h *Holder) fail(msg string, err error) error {
	h.update(func(st *State) {
		st.Loading = false
		st.Error = fmt.Sprintf("%s: %v", msg, err)
	})
	return err
}

// Open загружает карточку в Current.
func (h *Holder) Open(ctx context.Context, id string) error {
	h.opMu.Lock()
	defer h.opMu.Unlock()
	if err := h.begin(); err != nil {
		return err
	}

	cctx, done := h.call(ctx)
	card, err := h.remote.Get(cctx, id)
	done()
	if err != nil {
		return h.fail("Failed to load flashcard", err)
	}
	h.update(func(st *State) {
		st.Loading = false
		st.Current = card
	})
	return nil
}

// Add создаёт карточку и перезагружает набор. Возвращает id новой карточки.
func (h *Holder) Add(ctx context.Context, card model.Flashcard) (string, error) {
	h.opMu.Lock()
	defer h.opMu.Unlock()
	if err := h.begin(); err != nil {
		return "", err
	}

	cctx, done := h.call(ctx)
	id, err := h.remote.Add(cctx, card)
	done()
	if err != nil {
		return "", h.fail("Failed to add flashcard", err)
	}
	h.update(func(st *State) {
		st.Success = "Flashcard added successfully"
		st.Error = ""
	})
	// карточка уже сохранена: ошибка перезагрузки отражается в Error, но не в результате
	_ = h.load(ctx)
	return id, nil
}

// Update сохраняет изменения карточки card.ID и перезагружает набор.
func (h *Holder) Update(ctx context.Context, card model.Flashcard) (bool, error) {
	h.opMu.Lock()
	defer h.opMu.Unlock()
	if err := h.begin(); err != nil {
		return false, err
	}

	cctx, done := h.call(ctx)
	ok, err := h.remote.Update(cctx, card)
	done()
	if err != nil {
		return false, h.fail("Failed to update flashcard", err)
	}
	h.update(func(st *State) {
		st.Success = "Flashcard updated successfully"
		st.Error = ""
		if st.Current != nil && st.Current.ID == card.ID {
			st.Current = nil
		}
	})
	_ = h.load(ctx)
	return ok, nil
}

// Delete удаляет карточку и перезагружает набор.
func (h *Holder) Delete(ctx context.Context, id string) (bool, error) {
	h.opMu.Lock()
	defer h.opMu.Unlock()
	if err := h.begin(); err != nil {
		return false, err
	}

	cctx, done := h.call(ctx)
	ok, err := h.remote.Delete(cctx, id)
	done()
	if err != nil {
		return false, h.fail("Failed to delete flashcard", err)
	}
	h.update(func(st *State) {
		st.Success = "Flashcard deleted successfully"
		st.Error = ""
		if st.Current != nil && st.Current.ID == id {
			st.Current = nil
		}
	})
	_ = h.load(ctx)
	return ok, nil
}

// setFilter заменяет фильтр и синхронно пересчитывает видимое подмножество.
func (h *Holder) setFilter(fn func(filter.State) filter.State) {
	h.update(func(st *State) {
		st.Filter = fn(st.Filter)
		h.recompute(st)
	})
}

// SetSearch задаёт строку поиска; nil снимает ограничение.
func (h *Holder) SetSearch(q *string) {
	h.setFilter(func(f filter.State) filter.State { return f.WithSearch(q) })
}

// SetCategories задаёт выбранные категории; пустой список снимает ограничение.
func (h *Holder) SetCategories(categories []string) {
	h.setFilter(func(f filter.State) filter.State { return f.WithCategories(categories) })
}

// SetDifficulties задаёт выбранные уровни сложности.
func (h *Holder) SetDifficulties(difficulties []int) {
	h.setFilter(func(f filter.State) filter.State { return f.WithDifficulties(difficulties) })
}

// ClearFilters сбрасывает все фильтры.
func (h *Holder) ClearFilters() {
	h.setFilter(func(f filter.State) filter.State { return f.Cleared() })
}

// ClearError убирает сообщение об ошибке.
func (h *Holder) ClearError() {
	h.update(func(st *State) { st.Error = "" })
}

// ClearSuccess убирает сообщение об успехе.
func (h *Holder) ClearSuccess() {
	h.update(func(st *State) { st.Success = "" })
}

// ClearCurrent убирает открытую карточку.
func (h *Holder) ClearCurrent() {
	h.update(func(st *State) { st.Current = nil })
}

func copyState(s State) State {
	out := s
	out.Visible = make([]model.Flashcard, len(s.Visible))
	copy(out.Visible, s.Visible)
	out.Categories = make([]string, len(s.Categories))
	copy(out.Categories, s.Categories)
	if s.Current != nil {
		c := *s.Current
		out.Current = &c
	}
	return out
}
