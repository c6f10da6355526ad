// internal/form/controller.go
package form

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jrvaldez/product-catalog/internal/models"
	"github.com/jrvaldez/product-catalog/internal/toast"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Field names, matching the wire names of the product payload.
const (
	FieldID           = "id"
	FieldName         = "name"
	FieldDescription  = "description"
	FieldLogo         = "logo"
	FieldDateRelease  = "date_release"
	FieldDateRevision = "date_revision"
)

// Error tags carried by a field. TagMinLength and TagMaxLength carry the
// violated bound in ErrorDetail.
const (
	TagRequired           = "required"
	TagMinLength          = "minlength"
	TagMaxLength          = "maxlength"
	TagInvalidDateRelease = "invalidDateRelease"
	TagIDExists           = "idAlreadyExists"
)

const DefaultDebounce = 300 * time.Millisecond

// ErrInvalid is returned by Submit when the draft does not pass validation.
var ErrInvalid = errors.New("product form is not valid")

// ErrClosed is returned once the controller has been torn down.
var ErrClosed = errors.New("form controller is closed")

type ErrorDetail struct {
	RequiredLength int
}

// ProductStore is the slice of the repository the controller needs.
type ProductStore interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.APIResult, error)
	Update(ctx context.Context, product *models.Product) (*models.APIResult, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
}

type Notifier interface {
	Publish(message string, severity toast.Severity)
}

var fieldNames = []string{
	FieldID, FieldName, FieldDescription, FieldLogo, FieldDateRelease, FieldDateRevision,
}

// Length rules applied only to non-empty values, the way the reference
// validators behave: an empty field reports required alone.
var lengthRules = map[string]string{
	FieldID:          "min=3,max=10",
	FieldName:        "min=5,max=100",
	FieldDescription: "min=10,max=200",
}

var validate = validator.New()

type fieldState struct {
	value   string
	touched bool
	errors  map[string]ErrorDetail
}

// Controller holds a Product draft with per-field validation state, a
// debounced uniqueness check on the identifier, and the submit protocol.
// It is safe for use by the caller goroutine alongside the debounce timer.
type Controller struct {
	mu sync.Mutex

	mode     Mode
	store    ProductStore
	notifier Notifier

	fields  map[string]*fieldState
	loadErr string

	debounce time.Duration
	now      func() time.Time

	checkGen     uint64
	checkTimer   *time.Timer
	checkPending bool
	lastQueued   string

	destroyed bool
}

type Option func(*Controller)

// WithDebounce overrides the quiet period before the uniqueness check fires.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithClock injects the time source used for the release-date rule.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

func New(store ProductStore, notifier Notifier, opts ...Option) *Controller {
	c := &Controller{
		mode:     ModeCreate,
		store:    store,
		notifier: notifier,
		fields:   make(map[string]*fieldState, len(fieldNames)),
		debounce: DefaultDebounce,
		now:      time.Now,
	}

	for _, name := range fieldNames {
		c.fields[name] = &fieldState{errors: make(map[string]ErrorDetail)}
	}

	for _, opt := range opts {
		opt(c)
	}

	c.mu.Lock()
	for _, name := range fieldNames {
		c.validateLocked(name)
	}
	c.mu.Unlock()

	return c
}

// Initialize fixes the mode. A non-empty existingID switches to edit mode
// and populates the draft from the repository; a fetch failure is stored as
// a local error and leaves the form usable.
func (c *Controller) Initialize(ctx context.Context, existingID string) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	if existingID == "" {
		c.mode = ModeCreate
		c.mu.Unlock()
		return
	}
	c.mode = ModeEdit
	c.mu.Unlock()

	product, err := c.store.GetByID(ctx, existingID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}

	if err != nil || product == nil {
		c.loadErr = fmt.Sprintf("could not load product %q", existingID)
		return
	}

	c.fields[FieldID].value = product.ID
	c.fields[FieldName].value = product.Name
	c.fields[FieldDescription].value = product.Description
	c.fields[FieldLogo].value = product.Logo
	c.fields[FieldDateRelease].value = product.DateRelease
	c.fields[FieldDateRevision].value = product.DateRevision

	for _, name := range fieldNames {
		c.validateLocked(name)
	}
}

// SetValue records a user edit, re-validates the field, recomputes the
// revision date when the release date changes, and in create mode schedules
// the debounced uniqueness check for the identifier.
func (c *Controller) SetValue(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := c.fields[name]
	if !ok || c.destroyed {
		return
	}

	// The identifier is frozen in edit mode; the revision date is only
	// ever derived from the release date.
	if name == FieldDateRevision || (name == FieldID && c.mode == ModeEdit) {
		return
	}

	f.value = value
	f.touched = true
	c.validateLocked(name)

	switch name {
	case FieldDateRelease:
		c.deriveRevisionLocked()
	case FieldID:
		if c.mode == ModeCreate {
			c.scheduleIDCheckLocked(value)
		}
	}
}

// deriveRevisionLocked keeps date_revision exactly one year after
// date_release. Clearing the release clears the revision.
func (c *Controller) deriveRevisionLocked() {
	release := c.fields[FieldDateRelease].value
	revision := c.fields[FieldDateRevision]

	if release == "" {
		revision.value = ""
	} else {
		revision.value = models.RevisionDate(release)
	}
	c.validateLocked(FieldDateRevision)
}

func (c *Controller) scheduleIDCheckLocked(value string) {
	wasPending := c.checkPending
	if c.checkTimer != nil {
		c.checkTimer.Stop()
		c.checkTimer = nil
	}
	c.checkPending = false

	if value == "" {
		// Supersede any in-flight check; no check runs for an empty value.
		c.checkGen++
		c.lastQueued = ""
		delete(c.fields[FieldID].errors, TagIDExists)
		return
	}

	if value == c.lastQueued {
		if !wasPending {
			// Same committed value and its outcome already landed.
			return
		}
		// Re-committed during the quiet period: the check for this value
		// is still owed, restart its timer under the same generation.
		c.checkPending = true
		gen := c.checkGen
		c.checkTimer = time.AfterFunc(c.debounce, func() {
			c.runIDCheck(context.Background(), gen, value)
		})
		return
	}

	c.lastQueued = value
	delete(c.fields[FieldID].errors, TagIDExists)
	c.checkGen++
	c.checkPending = true

	gen := c.checkGen
	c.checkTimer = time.AfterFunc(c.debounce, func() {
		c.runIDCheck(context.Background(), gen, value)
	})
}

func (c *Controller) runIDCheck(ctx context.Context, gen uint64, value string) {
	c.mu.Lock()
	if c.destroyed || gen != c.checkGen {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	exists, err := c.store.ExistsByID(ctx, value)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyCheckLocked(gen, exists, err)
}

// applyCheckLocked lands the outcome of a uniqueness check, unless a newer
// check or teardown superseded it. A failed check passes (fail-open).
func (c *Controller) applyCheckLocked(gen uint64, exists bool, err error) {
	if c.destroyed || gen != c.checkGen {
		return
	}
	c.checkPending = false

	f := c.fields[FieldID]
	if err == nil && exists {
		f.errors[TagIDExists] = ErrorDetail{}
	} else {
		delete(f.errors, TagIDExists)
	}
}

// validateLocked rebuilds the synchronous error set of a field. The async
// uniqueness tag is owned by the check lifecycle and survives re-validation.
func (c *Controller) validateLocked(name string) {
	f := c.fields[name]
	_, hadExists := f.errors[TagIDExists]
	f.errors = make(map[string]ErrorDetail)

	if f.value == "" {
		f.errors[TagRequired] = ErrorDetail{}
	} else {
		if rule, ok := lengthRules[name]; ok {
			if err := validate.Var(f.value, rule); err != nil {
				var verrs validator.ValidationErrors
				if errors.As(err, &verrs) {
					for _, e := range verrs {
						bound, _ := strconv.Atoi(e.Param())
						switch e.Tag() {
						case "min":
							f.errors[TagMinLength] = ErrorDetail{RequiredLength: bound}
						case "max":
							f.errors[TagMaxLength] = ErrorDetail{RequiredLength: bound}
						}
					}
				}
			}
		}

		if name == FieldDateRelease {
			c.validateReleaseDateLocked(f)
		}
	}

	if name == FieldID && hadExists {
		f.errors[TagIDExists] = ErrorDetail{}
	}
}

// validateReleaseDateLocked tags values that do not parse, or that fall
// before today at day granularity.
func (c *Controller) validateReleaseDateLocked(f *fieldState) {
	release, err := time.Parse(models.DateLayout, f.value)
	if err != nil {
		f.errors[TagInvalidDateRelease] = ErrorDetail{}
		return
	}

	now := c.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if release.Before(today) {
		f.errors[TagInvalidDateRelease] = ErrorDetail{}
	}
}

// Submit validates the full draft including any pending uniqueness check.
// An invalid draft touches every field and performs no network call. A
// valid one is sent to create or update depending on the mode, and the
// outcome is published to the notifier.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return ErrClosed
	}

	// A scheduled check still inside its quiet period is resolved now so
	// the validity snapshot reflects it.
	if c.checkPending && c.mode == ModeCreate {
		if c.checkTimer != nil {
			c.checkTimer.Stop()
			c.checkTimer = nil
		}
		gen := c.checkGen
		value := c.lastQueued
		c.mu.Unlock()

		exists, err := c.store.ExistsByID(ctx, value)

		c.mu.Lock()
		if c.destroyed {
			c.mu.Unlock()
			return ErrClosed
		}
		c.applyCheckLocked(gen, exists, err)
	}

	if !c.validLocked() {
		for _, f := range c.fields {
			f.touched = true
		}
		c.mu.Unlock()
		return ErrInvalid
	}

	product := c.productLocked()
	mode := c.mode
	c.mu.Unlock()

	var result *models.APIResult
	var err error
	if mode == ModeEdit {
		result, err = c.store.Update(ctx, &product)
	} else {
		result, err = c.store.Create(ctx, &product)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return ErrClosed
	}

	if err != nil {
		c.notifier.Publish(err.Error(), toast.SeverityError)
		return err
	}

	c.notifier.Publish(result.Message, toast.SeveritySuccess)
	return nil
}

// Reset clears values, touched flags and error state back to the initial
// empty condition. The mode is preserved.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}

	if c.checkTimer != nil {
		c.checkTimer.Stop()
		c.checkTimer = nil
	}
	c.checkGen++
	c.checkPending = false
	c.lastQueued = ""
	c.loadErr = ""

	for _, name := range fieldNames {
		f := c.fields[name]
		f.value = ""
		f.touched = false
		f.errors = make(map[string]ErrorDetail)
		c.validateLocked(name)
	}
}

// Close tears the controller down. Pending debounce timers are stopped and
// any in-flight result is discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}

	c.destroyed = true
	if c.checkTimer != nil {
		c.checkTimer.Stop()
		c.checkTimer = nil
	}
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller) LoadError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

func (c *Controller) Value(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.fields[name]; ok {
		return f.value
	}
	return ""
}

func (c *Controller) Touched(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.fields[name]; ok {
		return f.touched
	}
	return false
}

// Errors returns a copy of the field's active error tags.
func (c *Controller) Errors(name string) map[string]ErrorDetail {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := c.fields[name]
	if !ok {
		return nil
	}

	out := make(map[string]ErrorDetail, len(f.errors))
	for tag, detail := range f.errors {
		out[tag] = detail
	}
	return out
}

// Valid reports whether every field passes and no uniqueness check is
// still outstanding.
func (c *Controller) Valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validLocked()
}

func (c *Controller) validLocked() bool {
	if c.checkPending {
		return false
	}
	for _, f := range c.fields {
		if len(f.errors) > 0 {
			return false
		}
	}
	return true
}

// Product returns the current draft as a payload snapshot.
func (c *Controller) Product() models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.productLocked()
}

func (c *Controller) productLocked() models.Product {
	return models.Product{
		ID:           c.fields[FieldID].value,
		Name:         c.fields[FieldName].value,
		Description:  c.fields[FieldDescription].value,
		Logo:         c.fields[FieldLogo].value,
		DateRelease:  c.fields[FieldDateRelease].value,
		DateRevision: c.fields[FieldDateRevision].value,
	}
}

// messageOrder fixes the rendering order of error messages.
var messageOrder = []string{TagRequired, TagMinLength, TagMaxLength, TagInvalidDateRelease, TagIDExists}

// ErrorMessages renders one human-readable message per active error tag.
// Unknown tags fall back to a generic message so the UI is never silent.
func (c *Controller) ErrorMessages(name string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := c.fields[name]
	if !ok || len(f.errors) == 0 {
		return nil
	}

	var messages []string
	seen := make(map[string]bool, len(f.errors))

	for _, tag := range messageOrder {
		detail, ok := f.errors[tag]
		if !ok {
			continue
		}
		seen[tag] = true

		switch tag {
		case TagRequired:
			messages = append(messages, capitalize(name)+" is required")
		case TagMinLength:
			messages = append(messages, fmt.Sprintf("%s must be at least %d characters", capitalize(name), detail.RequiredLength))
		case TagMaxLength:
			messages = append(messages, fmt.Sprintf("%s must be at most %d characters", capitalize(name), detail.RequiredLength))
		case TagInvalidDateRelease:
			messages = append(messages, "the date must be on or after the current date")
		case TagIDExists:
			messages = append(messages, "this ID already exists")
		}
	}

	var unknown []string
	for tag := range f.errors {
		if !seen[tag] {
			unknown = append(unknown, tag)
		}
	}
	sort.Strings(unknown)
	for range unknown {
		messages = append(messages, capitalize(name)+" is not valid")
	}

	return messages
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
