package project

import (
	"strconv"
	"strings"

	bcerrors "github.com/conduit-lang/buildconf/internal/errors"
)

// UnitKind is the compiler a compilation unit runs
type UnitKind string

const (
	UnitKindJava   UnitKind = "java"
	UnitKindKotlin UnitKind = "kotlin"
	UnitKindGroovy UnitKind = "groovy"
)

// CompilationUnit is a buildable source set within a subproject
type CompilationUnit struct {
	Name                string      `json:"name" yaml:"name"`
	Kind                UnitKind    `json:"kind" yaml:"kind"`
	SourceCompatibility JavaVersion `json:"source_compatibility,omitempty" yaml:"source_compatibility,omitempty"`
	TargetCompatibility JavaVersion `json:"target_compatibility,omitempty" yaml:"target_compatibility,omitempty"`
}

// NewCompilationUnit creates a unit with no pinned language level
func NewCompilationUnit(name string, kind UnitKind) *CompilationUnit {
	return &CompilationUnit{Name: name, Kind: kind}
}

// JavaVersion is a normalized Java language level: "1.6" through "1.8", then "9" onwards
type JavaVersion string

const (
	JavaVersion8  JavaVersion = "1.8"
	JavaVersion11 JavaVersion = "11"
	JavaVersion17 JavaVersion = "17"
)

const (
	minJavaFeature = 6
	maxJavaFeature = 25
)

// ParseJavaVersion accepts "11", "1.8", "8", "VERSION_11" and "VERSION_1_8"
func ParseJavaVersion(s string) (JavaVersion, error) {
	raw := strings.TrimSpace(s)
	v := strings.TrimPrefix(strings.ToUpper(raw), "VERSION_")
	v = strings.ReplaceAll(v, "_", ".")
	legacy := strings.HasPrefix(v, "1.")
	v = strings.TrimPrefix(v, "1.")

	feature, err := strconv.Atoi(v)
	// The "1.x" form only exists up to Java 8.
	if err != nil || feature < minJavaFeature || feature > maxJavaFeature || (legacy && feature > 8) {
		return "", bcerrors.NewConfigurationError(bcerrors.ErrInvalidJavaVersion).
			WithMessage("unsupported Java language level %q", raw)
	}

	if feature <= 8 {
		return JavaVersion("1." + strconv.Itoa(feature)), nil
	}
	return JavaVersion(strconv.Itoa(feature)), nil
}

// String returns the version as written in compiler flags
func (v JavaVersion) String() string {
	return string(v)
}
