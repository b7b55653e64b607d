// Package logsafe renders arbitrary values as log-safe text.
//
// A logging front-end calls Serialize on every argument it is about to write.
// Values whose type carries a policy are walked field by field and rendered
// as flat key=value pairs or a structured (JSON by default) object, with
// per-field masking, truncation, hashing and size-only reporting. Everything
// else is returned unchanged. Serialize never panics: failures degrade to
// the original value.
//
// # Declaring Policy
//
// A type becomes eligible in one of three ways:
//
//	logsafe.Register[User](logsafe.Structured(), logsafe.WithMaxDepth(2))
//
//	func (Order) LogPolicy() logsafe.TypePolicy { return logsafe.DefaultPolicy() }
//
//	logsafe.LoadPolicyFile("policies.yaml")
//
// # Tag Syntax
//
// Field behavior is declared via struct tags:
//
//	log.name:"alias"     - Output key (default: json name, then field name)
//	log.mask:"4"         - Mask all but the last 4 characters
//	log.mask:"email"     - Content-aware mask (email, card, phone, ip, uuid, name)
//	log.size:"true"      - Log the length instead of the value
//	log.null:"true"      - Keep nil values as null
//	log.max:"32"         - Truncate text beyond 32 characters
//	log.hash:"sha256"    - Log a fingerprint (sha256, sha512, blake2b, sha3)
//	log.include:"true"   - Listed for ModeIncludeListed
//	log.exclude:"true"   - Listed for ModeExcludeListed
//	log:"-"              - Never logged
//
// # Basic Usage
//
//	type User struct {
//	    ID       string `json:"id"`
//	    Email    string `json:"email" log.mask:"email"`
//	    Password string `json:"password" log:"-"`
//	    Card     string `json:"card" log.mask:"4"`
//	}
//
//	_ = logsafe.Register[User]()
//
//	logsafe.Serialize(User{ID: "u1", Email: "alice@example.com", Card: "4111111111111111"})
//	// id=u1, email=a****@example.com, card=************1111
//
// # Structured Output
//
// FormatStructured renders through the Serializer's Codec. JSON is the
// default; the yaml and msgpack subpackages provide the alternatives:
//
//	s := logsafe.New(logsafe.WithCodec(yaml.New()))
//
// # Cycles and Depth
//
// A reference met again while it is still being expanded renders as
// [CIRCULAR]. Values beyond a type's MaxDepth render as [MAX_DEPTH_REACHED].
// Shared references that are not ancestors of each other are expanded at
// every occurrence.
//
// # Signals
//
// Descriptor creation, rendering and absorbed failures are emitted as capitan
// signals (SignalDescriptorCreated, SignalDescriptorRejected, SignalSerializeComplete,
// SignalSerializeFailed).
package logsafe
