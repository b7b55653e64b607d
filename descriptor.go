package logsafe

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/zoobzio/sentinel"
)

// Field tag keys.
const (
	tagLog     = "log"
	tagName    = "log.name"
	tagMask    = "log.mask"
	tagSize    = "log.size"
	tagNull    = "log.null"
	tagMax     = "log.max"
	tagHash    = "log.hash"
	tagInclude = "log.include"
	tagExclude = "log.exclude"
)

// fieldTags lists every field-level tag key, in the order they are read.
var fieldTags = []string{
	tagLog,
	tagName,
	tagMask,
	tagSize,
	tagNull,
	tagMax,
	tagHash,
	tagInclude,
	tagExclude,
}

func init() {
	for _, tag := range fieldTags {
		sentinel.Tag(tag)
	}
}

// typeDescriptor is the resolved, immutable policy of one concrete type.
type typeDescriptor struct {
	typ      reflect.Type
	name     string
	eligible bool
	policy   TypePolicy
	fields   []fieldDescriptor // declaration order, already filtered by mode
}

// fieldDescriptor describes how to read and transform a single field.
type fieldDescriptor struct {
	index       []int    // reflect.Value.FieldByIndex access path
	name        string   // dotted Go path for error messages
	alias       string   // output key
	mask        bool     // replace with a masked textual form
	maskVisible int      // trailing runes left visible by the suffix masker
	maskType    MaskType // content-aware masker; empty selects the suffix masker
	logSize     bool     // emit the size instead of the value
	logNull     bool     // keep nil values as null instead of omitting them
	maxLength   int      // truncate text beyond this many runes; Unlimited disables
	hash        HashAlgo // replace with a fingerprint; empty disables
	include     bool     // listed for ModeIncludeListed
	exclude     bool     // listed for ModeExcludeListed
}

// ineligible returns the descriptor for a type without a policy.
func ineligible(rt reflect.Type) *typeDescriptor {
	return &typeDescriptor{
		typ:    rt,
		name:   rt.String(),
		policy: DefaultPolicy(),
	}
}

// buildDescriptor resolves field descriptors for rt.
// overrides maps Go field names to tag values that replace the struct tags.
func buildDescriptor(rt reflect.Type, policy TypePolicy, overrides map[string]map[string]string) (*typeDescriptor, error) {
	desc := &typeDescriptor{
		typ:      rt,
		name:     rt.String(),
		eligible: true,
		policy:   policy,
	}

	var all []fieldDescriptor
	seen := map[reflect.Type]bool{rt: true}
	if err := collectFields(&all, rt, nil, "", overrides, seen, desc.name); err != nil {
		return nil, err
	}

	for _, fd := range all {
		switch policy.Mode {
		case ModeIncludeListed:
			if !fd.include {
				continue
			}
		case ModeExcludeListed:
			if fd.exclude {
				continue
			}
		}
		desc.fields = append(desc.fields, fd)
	}

	return desc, nil
}

// collectFields appends descriptors for the fields of owner, flattening
// anonymous embedded structs (exported or not) in declaration order.
func collectFields(out *[]fieldDescriptor, owner reflect.Type, parentIndex []int, namePrefix string, overrides map[string]map[string]string, seen map[reflect.Type]bool, typeName string) error {
	spec := scanFields(owner)
	for _, field := range spec.Fields {
		sf := owner.Field(field.Index[0])
		fullIndex := append(append([]int{}, parentIndex...), field.Index...)
		fullName := field.Name
		if namePrefix != "" {
			fullName = namePrefix + "." + field.Name
		}

		tags := field.Tags
		for k, v := range overrides[fullName] {
			tags[k] = v
		}
		if tags[tagLog] == "-" {
			continue
		}

		// Embedded structs contribute their fields as if declared here
		if sf.Anonymous {
			if _, named := tags[tagName]; !named {
				et := field.ReflectType
				isPtr := field.Kind == sentinel.KindPointer
				if isPtr {
					et = et.Elem()
				}
				if et.Kind() == reflect.Struct {
					if seen[et] || (isPtr && !sf.IsExported()) {
						continue
					}
					seen[et] = true
					err := collectFields(out, et, fullIndex, fullName, overrides, seen, typeName)
					delete(seen, et)
					if err != nil {
						return err
					}
					continue
				}
			}
		}

		if !sf.IsExported() {
			continue
		}

		fd, err := parseFieldDescriptor(typeName, fullName, sf, tags)
		if err != nil {
			return err
		}
		fd.index = fullIndex
		*out = append(*out, fd)
	}

	return nil
}

// parseFieldDescriptor resolves the field directives declared by tags.
func parseFieldDescriptor(typeName, fieldName string, sf reflect.StructField, tags map[string]string) (fieldDescriptor, error) {
	fd := fieldDescriptor{
		name:      fieldName,
		alias:     defaultAlias(sf),
		maxLength: Unlimited,
	}

	if val, ok := tags[tagName]; ok && val != "" {
		fd.alias = val
	}

	if val, ok := tags[tagMask]; ok {
		fd.mask = true
		switch {
		case val == "" || val == "true":
		case IsValidMaskType(MaskType(val)):
			fd.maskType = MaskType(val)
		default:
			n, err := strconv.Atoi(val)
			if err != nil {
				return fd, newConfigError(ErrInvalidTag, typeName, fieldName, tagMask+"="+val)
			}
			fd.maskVisible = max(n, 0)
		}
	}

	if val, ok := tags[tagHash]; ok {
		if !IsValidHashAlgo(HashAlgo(val)) {
			return fd, newConfigError(ErrInvalidTag, typeName, fieldName, tagHash+"="+val)
		}
		fd.hash = HashAlgo(val)
	}

	if val, ok := tags[tagMax]; ok {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fd, newConfigError(ErrInvalidTag, typeName, fieldName, tagMax+"="+val)
		}
		if n >= 0 {
			fd.maxLength = n
		}
	}

	flags := []struct {
		key string
		dst *bool
	}{
		{tagSize, &fd.logSize},
		{tagNull, &fd.logNull},
		{tagInclude, &fd.include},
		{tagExclude, &fd.exclude},
	}
	for _, flag := range flags {
		val, ok := tags[flag.key]
		if !ok {
			continue
		}
		if val == "" {
			*flag.dst = true
			continue
		}
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fd, newConfigError(ErrInvalidTag, typeName, fieldName, flag.key+"="+val)
		}
		*flag.dst = b
	}

	return fd, nil
}

// defaultAlias prefers the json name, then the Go field name.
func defaultAlias(sf reflect.StructField) string {
	if tag, ok := sf.Tag.Lookup("json"); ok {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return sf.Name
}

// parseLogTags extracts log.* tags from a struct tag.
func parseLogTags(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	for _, key := range fieldTags {
		if val, ok := tag.Lookup(key); ok {
			tags[key] = val
		}
	}
	return tags
}

// scanFields enumerates the direct fields of rt, unexported and embedded
// ones included, as sentinel metadata carrying only the log tags.
func scanFields(rt reflect.Type) sentinel.Metadata {
	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        parseLogTags(sf.Tag),
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		spec.Fields = append(spec.Fields, fm)
	}

	return spec
}
