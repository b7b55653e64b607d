package logsafe

import (
	"time"

	"github.com/google/uuid"
)

type Leaf struct {
	A string `json:"a"`
	B int    `json:"b"`
}

type Holder struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Node struct {
	Name  string `json:"name"`
	Child *Node  `json:"child"`
}

type Secret struct {
	PIN  string  `json:"pin" log.mask:"2"`
	Bio  string  `json:"bio" log.max:"3"`
	Tags []int   `json:"tags" log.size:"true"`
	Note *string `json:"note"`
	Opt  *string `json:"opt" log.null:"true"`
}

type Listed struct {
	Public  string `json:"public" log.include:"true"`
	Private string `json:"private" log.exclude:"true"`
	Other   string `json:"other"`
}

type Diamond struct {
	Left  *Leaf `json:"left"`
	Right *Leaf `json:"right"`
}

type Wrapper struct {
	Inner Leaf `json:"inner"`
}

type Scalars struct {
	When time.Time     `json:"when"`
	ID   uuid.UUID     `json:"id"`
	Raw  []byte        `json:"raw"`
	TTL  time.Duration `json:"ttl"`
	OK   bool          `json:"ok"`
}

type Directives struct {
	Email   string            `json:"email" log.mask:"email"`
	Token   string            `json:"token" log.hash:"sha256"`
	Short   string            `json:"short" log.max:"4" log.mask:"2"`
	Count   map[string]int    `json:"count" log.size:"true"`
	Renamed string            `json:"renamed" log.name:"alias"`
	Hidden  string            `log:"-"`
	Labels  map[string]string `json:"labels"`
	private string
}

type Contact struct {
	Email string `json:"email" log.mask:"email"`
}

// Partial relies on zero-value defaults for Mode and Format.
type Partial struct {
	Name string `json:"name"`
}

func (Partial) LogPolicy() TypePolicy { return TypePolicy{MaxDepth: Unlimited} }

type Lazy struct {
	Name string `json:"name"`
}

func (Lazy) LogPolicy() TypePolicy {
	p := DefaultPolicy()
	p.Format = FormatStructured
	return p
}

type BrokenLazy struct {
	Name string `json:"name"`
}

func (BrokenLazy) LogPolicy() TypePolicy {
	return TypePolicy{Mode: "sometimes"}
}

type Base struct {
	ID string `json:"id"`
}

type Embeds struct {
	Base
	Name string `json:"name"`
}

func (Embeds) LogPolicy() TypePolicy { return DefaultPolicy() }

type NamedEmbed struct {
	Base `log.name:"base"`
	Name string `json:"name"`
}

func (NamedEmbed) LogPolicy() TypePolicy { return DefaultPolicy() }

func strPtr(s string) *string { return &s }

type inner struct {
	ID string `json:"id"`
}

type Unexported struct {
	inner
	Name string `json:"name"`
}

type Optional struct {
	*Base
	Name string `json:"name"`
}

// Shallow leaves MaxDepth at zero.
type Shallow struct {
	Name  string `json:"name"`
	Child *Leaf  `json:"child"`
}

func (Shallow) LogPolicy() TypePolicy { return TypePolicy{} }

type envelope struct {
	Payload map[string]any
}

type bag struct {
	Items []any
}

type Carrier struct {
	ID  string   `json:"id"`
	Env envelope `json:"env"`
	Bag bag      `json:"bag"`
}
