package metadata

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	metaerrors "github.com/jacoelho/romdict/errors"
	"github.com/jacoelho/romdict/internal/propvalue"
)

const fullDefinition = `<?xml version="1.0" encoding="UTF-8"?>
<ReportMetaData>
  <ChoiceType name="fontWeight">
    <Choice displayNameID="c.normal" name="normal"/>
    <Choice displayNameID="c.bold" name="bold"/>
    <Choice displayNameID="c.lighter" name="lighter"/>
  </ChoiceType>
  <Structure name="HighlightRule" displayNameID="s.hr">
    <Member name="operator" displayNameID="m.op" type="string"/>
    <Member name="value1" displayNameID="m.v1" type="expression"/>
    <Member name="color" displayNameID="m.color" type="color">
      <Default>Red</Default>
    </Member>
  </Structure>
  <Validators>
    <ValueValidator name="nonNegative" class="NonNegativeValidator"/>
    <SemanticValidator name="nameRequired" class="NameRequiredValidator" modules="report, library"/>
  </Validators>
  <Style name="report" displayNameID="st.report"/>
  <Element name="Style" displayNameID="e.style" nameSpace="style" isNameRequired="true">
    <Property name="fontWeight" displayNameID="p.fw" type="choice" detailType="fontWeight">
      <Default>BOLD</Default>
      <Allowed>normal, bold</Allowed>
    </Property>
    <Property name="fontSize" displayNameID="p.fs" type="dimension" validator="nonNegative">
      <Default>10pt</Default>
      <AllowedUnits>pt,in</AllowedUnits>
      <DefaultUnit>pt</DefaultUnit>
    </Property>
  </Element>
  <Element name="ReportElement" displayNameID="e.re" isAbstract="true" hasStyle="true" nameSpace="element">
    <PropertyGroup displayNameID="g.basic">
      <Property name="name" displayNameID="p.name" type="name"/>
    </PropertyGroup>
    <Property name="width" displayNameID="p.width" type="dimension"/>
    <StyleProperty name="fontWeight"/>
    <SemanticValidator validator="nameRequired"/>
  </Element>
  <Element name="Label" displayNameID="e.label" extends="ReportElement" xmlName="label">
    <Property name="text" displayNameID="p.text" type="string" trimOption="trimSpace">
      <Trigger validator="nameRequired" targetElement="Label" preRequisite="TRUE"/>
    </Property>
    <Property name="highlightRules" displayNameID="p.hr" type="structure" detailType="HighlightRule" isList="true"/>
    <PropertyVisibility name="width" visibility="hide"/>
    <Method name="onCreate" displayNameID="m.onCreate" context="factory" returnType="void">
      <Argument name="reportContext" type="IReportContext" tagID="a.rc"/>
    </Method>
  </Element>
  <Element name="Report" displayNameID="e.report">
    <Property name="body" displayNameID="p.body" type="element">
      <Type name="Label"/>
    </Property>
    <Property name="libraries" displayNameID="p.libs" type="list" subType="elementRef" detailType="this"/>
    <Slot name="components" displayNameID="s.components" multipleCardinality="true">
      <Type name="ReportElement"/>
    </Slot>
  </Element>
  <Class name="Math" displayNameID="c.math" native="true">
    <Constructor name="Math" displayNameID="c.math.ctor"/>
    <Member name="PI" displayNameID="c.math.pi" dataType="number" isStatic="true"/>
    <Method name="max" displayNameID="c.math.max" returnType="number" isStatic="true">
      <Argument name="a" type="number"/>
      <Argument name="b" type="number"/>
    </Method>
    <Method name="max" displayNameID="c.math.max3" returnType="number">
      <Argument name="a" type="number"/>
      <Argument name="b" type="number"/>
      <Argument name="c" type="number"/>
    </Method>
  </Class>
</ReportMetaData>`

func TestParseFullDefinition(t *testing.T) {
	d := mustParse(t, fullDefinition)
	if !d.Finalized() {
		t.Fatal("Finalized() = false")
	}

	c := d.Counts()
	if c.Elements != 4 || c.Structures != 1 || c.ChoiceSets != 3 || c.Classes != 1 ||
		c.PredefinedStyles != 1 || c.ValueValidators != 1 || c.SemanticValidators != 1 {
		t.Fatalf("Counts() = %+v", c)
	}

	var names []string
	for e := range d.Elements() {
		names = append(names, e.Name())
	}
	if want := []string{"Style", "ReportElement", "Label", "Report"}; !slices.Equal(names, want) {
		t.Fatalf("Elements() = %v, want %v", names, want)
	}

	t.Run("choices", func(t *testing.T) {
		style := mustElement(t, d, "Style")
		if style.NameOption() != NameRequired || style.NamespaceName() != "style" {
			t.Fatalf("Style name option = %v namespace = %s", style.NameOption(), style.NamespaceName())
		}
		fw := mustProperty(t, style, "fontWeight")
		if got, ok := fw.Default(); !ok || got != "bold" {
			t.Fatalf("fontWeight default = %v, %v", got, ok)
		}
		if got := fw.AllowedChoices().Names(); !slices.Equal(got, []string{"normal", "bold"}) {
			t.Fatalf("fontWeight allowed = %v", got)
		}
		if fw.ChoiceSet().Name() != "fontWeight" {
			t.Fatalf("fontWeight choice set = %q", fw.ChoiceSet().Name())
		}

		fs := mustProperty(t, style, "fontSize")
		if got, _ := fs.Default(); got != (propvalue.Dimension{Measure: 10, Units: "pt"}) {
			t.Fatalf("fontSize default = %v", got)
		}
		if got := fs.AllowedUnits().Names(); !slices.Equal(got, []string{"pt", "in"}) {
			t.Fatalf("fontSize allowed units = %v", got)
		}
		if fs.DefaultUnit() != "pt" || fs.ValueValidator() != "nonNegative" {
			t.Fatalf("fontSize unit = %q validator = %q", fs.DefaultUnit(), fs.ValueValidator())
		}
	})

	t.Run("inheritance", func(t *testing.T) {
		base := mustElement(t, d, "ReportElement")
		label := mustElement(t, d, "Label")
		if label.Parent() != base || !label.IsKindOf(base) || base.IsKindOf(label) {
			t.Fatal("Label does not derive from ReportElement")
		}
		name := mustProperty(t, label, "name")
		if name.GroupKey() != "g.basic" || name.Kind() != KindName {
			t.Fatalf("inherited name property group = %q kind = %v", name.GroupKey(), name.Kind())
		}
		if _, ok := label.LocalProperty("name"); ok {
			t.Fatal("LocalProperty(name) found on Label")
		}
		var props []string
		for p := range label.Properties() {
			props = append(props, p.Name())
		}
		if want := []string{"name", "width", "text", "highlightRules", "onCreate"}; !slices.Equal(props, want) {
			t.Fatalf("Label properties = %v, want %v", props, want)
		}
		if label.NamespaceName() != "element" {
			t.Fatalf("Label namespace = %s, want inherited element", label.NamespaceName())
		}
		if v, ok := label.PropertyVisibility("width"); !ok || v != "hide" {
			t.Fatalf("PropertyVisibility(width) = %q, %v", v, ok)
		}
		if got := base.StyleProperties(); !slices.Equal(got, []string{"fontWeight"}) {
			t.Fatalf("StyleProperties() = %v", got)
		}
		if trig := base.Triggers(); len(trig) != 1 || trig[0].Validator() == nil || trig[0].PreRequisite() {
			t.Fatalf("ReportElement triggers = %v", trig)
		}
	})

	t.Run("details", func(t *testing.T) {
		label := mustElement(t, d, "Label")
		report := mustElement(t, d, "Report")

		text := mustProperty(t, label, "text")
		if text.TrimOption() != TrimSpace {
			t.Fatalf("text trim option = %v", text.TrimOption())
		}
		if trig := text.Triggers(); len(trig) != 1 || trig[0].TargetElement() != "Label" || trig[0].Validator() == nil || !trig[0].PreRequisite() {
			t.Fatalf("text triggers = %v", trig)
		}

		rules := mustProperty(t, label, "highlightRules")
		hr, _ := d.Structure("HighlightRule")
		if !rules.IsList() || rules.Structure() != hr {
			t.Fatalf("highlightRules list = %v structure = %v", rules.IsList(), rules.Structure())
		}

		onCreate := mustProperty(t, label, "onCreate")
		m := onCreate.Method()
		if onCreate.Kind() != KindScript || m == nil || onCreate.Context() != "factory" {
			t.Fatalf("onCreate kind = %v method = %v", onCreate.Kind(), m)
		}
		if args := m.Arguments(); len(args) != 1 || args[0].Name() != "reportContext" || args[0].Type() != "IReportContext" {
			t.Fatalf("onCreate arguments = %v", args)
		}

		libs := mustProperty(t, report, "libraries")
		if libs.TargetElement() != "Report" || libs.TargetElementDefn() != report {
			t.Fatalf("libraries target = %q", libs.TargetElement())
		}
		body := mustProperty(t, report, "body")
		if got := body.AllowedElementDefns(); len(got) != 1 || got[0] != label {
			t.Fatalf("body element types = %v", body.AllowedElementTypes())
		}

		slot, ok := report.Slot("components")
		if !ok || !slot.IsMultipleCardinality() || !slot.IsManagedByNamespace() {
			t.Fatalf("components slot = %v, %v", slot, ok)
		}
		if !slot.CanContain(label) || slot.CanContain(report) {
			t.Fatal("components slot containment mismatch")
		}
	})

	t.Run("structure", func(t *testing.T) {
		hr, ok := d.Structure("HighlightRule")
		if !ok {
			t.Fatal("Structure(HighlightRule) not found")
		}
		var members []string
		for m := range hr.Members() {
			members = append(members, m.Name())
			if !m.IsStructMember() {
				t.Fatalf("member %q IsStructMember() = false", m.Name())
			}
		}
		if want := []string{"operator", "value1", "color"}; !slices.Equal(members, want) {
			t.Fatalf("members = %v, want %v", members, want)
		}
		color, _ := hr.Member("color")
		if got, _ := color.Default(); got != "red" {
			t.Fatalf("color default = %v", got)
		}
	})

	t.Run("class", func(t *testing.T) {
		math, ok := d.Class("Math")
		if !ok {
			t.Fatal("Class(Math) not found")
		}
		if native, set := math.Native(); !native || !set {
			t.Fatalf("Native() = %v, %v", native, set)
		}
		if ctor := math.Constructor(); ctor == nil || !ctor.IsConstructor() {
			t.Fatalf("Constructor() = %v", ctor)
		}
		overloads := math.Overloads("max")
		if len(overloads) != 2 || len(overloads[0].Arguments()) != 2 || len(overloads[1].Arguments()) != 3 {
			t.Fatalf("Overloads(max) = %v", overloads)
		}
		if pi, ok := math.Member("PI"); !ok || !pi.IsStatic() || pi.DataType() != "number" {
			t.Fatalf("Member(PI) = %v, %v", pi, ok)
		}
	})

	t.Run("validators", func(t *testing.T) {
		sv, ok := d.SemanticValidator("nameRequired")
		if !ok || !slices.Equal(sv.Modules(), []string{"report", "library"}) {
			t.Fatalf("SemanticValidator(nameRequired) = %v, %v", sv, ok)
		}
		vv, ok := d.ValueValidator("nonNegative")
		if !ok || vv.Validate(int64(-1)) == nil {
			t.Fatalf("ValueValidator(nonNegative) = %v, %v", vv, ok)
		}
		if _, ok := d.PredefinedStyle("report"); !ok {
			t.Fatal("PredefinedStyle(report) not found")
		}
	})
}

func TestDuplicateChoiceIsCaseInsensitive(t *testing.T) {
	b, err := build(t, wrap(`
  <ChoiceType name="align">
    <Choice displayNameID="a.foo" name="Foo"/>
    <Choice displayNameID="a.foo2" name="foo"/>
  </ChoiceType>`))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	wantCodes(t, b.Errors(), metaerrors.ErrDuplicateChoiceName)
	set, ok := b.dict.ChoiceSet("align")
	if !ok || set.Len() != 1 || set.Names()[0] != "Foo" {
		t.Fatalf("align choices = %v", set)
	}
	if _, ok := set.FindChoice("FOO"); !ok {
		t.Fatal("FindChoice(FOO) not found")
	}
}

func TestChoicePropertyRequiresDetail(t *testing.T) {
	b, err := build(t, wrap(`
  <Element name="E" displayNameID="e">
    <Property name="align" displayNameID="p.align" type="choice">
      <Default>left</Default>
    </Property>
    <Property name="width" displayNameID="p.width" type="dimension"/>
  </Element>`))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	wantCodes(t, b.Errors(), metaerrors.ErrChoiceTypeRequired)
	e, ok := b.dict.Element("E")
	if !ok {
		t.Fatal("element E was not registered")
	}
	if _, ok := e.LocalProperty("align"); ok {
		t.Fatal("rejected property align was added")
	}
	if _, ok := e.LocalProperty("width"); !ok {
		t.Fatal("sibling property width is missing")
	}
}

func TestInvalidTrimOptionIsFatal(t *testing.T) {
	doc := wrap(`
  <Element name="A" displayNameID="a">
    <Property name="p" displayNameID="p" type="string" trimOption="trimSpace;badToken"/>
  </Element>
  <Element name="B" displayNameID="b"/>`)

	b, err := build(t, doc)
	if !metaerrors.IsFatal(err) {
		t.Fatalf("Read() error = %v, want fatal", err)
	}
	var fatal *metaerrors.Fatal
	if !errors.As(err, &fatal) || fatal.Code != string(metaerrors.ErrInvalidTrimOption) {
		t.Fatalf("fatal = %v", err)
	}
	if fatal.Path != "/ReportMetaData/Element[A]/Property[p]" || fatal.Line == 0 {
		t.Fatalf("fatal path = %q line = %d", fatal.Path, fatal.Line)
	}
	if _, ok := b.dict.Element("B"); ok {
		t.Fatal("parsing continued after a fatal error")
	}
	if _, err := b.Finish(); err != fatal {
		t.Fatalf("Finish() error = %v, want the fatal error", err)
	}

	if _, err := Parse(strings.NewReader(doc), Config{}); !metaerrors.IsFatal(err) {
		t.Fatalf("Parse() error = %v, want fatal", err)
	}
}

func TestTrimOptionTokens(t *testing.T) {
	tests := []struct {
		in   string
		want TrimOption
	}{
		{"", TrimNone},
		{"noTrim", NoTrim},
		{"trimSpace; trimEmptyToNull", TrimSpace | TrimEmptyToNull},
		{"noTrim;", NoTrim},
		{"TRIMSPACE", TrimSpace},
	}
	for _, tt := range tests {
		got, err := parseTrimOption(tt.in)
		if err != nil {
			t.Fatalf("parseTrimOption(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("parseTrimOption(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := (TrimSpace | TrimEmptyToNull).String(); got != "trimSpace;trimEmptyToNull" {
		t.Fatalf("String() = %q", got)
	}
}

func TestUnknownTagsAreSkipped(t *testing.T) {
	b, err := build(t, wrap(`
  <Bogus><Element name="X" displayNameID="x"/></Bogus>
  <Element name="Y" displayNameID="y">
    <Whatever><Property name="q" displayNameID="q" type="string"/></Whatever>
    <Property name="p" displayNameID="p" type="string"/>
  </Element>`))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	wantCodes(t, b.Errors(), metaerrors.ErrUnknownTag, metaerrors.ErrUnknownTag)
	if _, ok := b.dict.Element("X"); ok {
		t.Fatal("element inside unknown tag was registered")
	}
	y, ok := b.dict.Element("Y")
	if !ok {
		t.Fatal("element Y is missing")
	}
	if _, ok := y.LocalProperty("q"); ok {
		t.Fatal("property inside unknown tag was added")
	}
	if _, ok := y.LocalProperty("p"); !ok {
		t.Fatal("property p is missing")
	}
	if path := b.Errors()[1].Path; path != "/ReportMetaData/Element[Y]/Whatever" {
		t.Fatalf("error path = %q", path)
	}
}

func TestRejectedEntitySkipsChildrenSilently(t *testing.T) {
	b, err := build(t, wrap(`
  <Element displayNameID="e">
    <Property name="p" type="bogus"/>
    <Slot name="s"/>
  </Element>`))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	wantCodes(t, b.Errors(), metaerrors.ErrNameRequired)
}

func TestInvalidRoot(t *testing.T) {
	_, err := Parse(strings.NewReader(`<Metadata><Element name="A" displayNameID="a"/></Metadata>`), Config{})
	wantCodes(t, err, metaerrors.ErrInvalidRoot)
}

func TestTagsMatchCaseInsensitively(t *testing.T) {
	d := mustParse(t, `<reportmetadata>
  <ELEMENT name="A" displayNameID="a">
    <property name="p" displayNameID="p" type="integer"><DEFAULT>7</DEFAULT></property>
  </ELEMENT>
</reportmetadata>`)
	p := mustProperty(t, mustElement(t, d, "A"), "p")
	if got, _ := p.Default(); got != int64(7) {
		t.Fatalf("default = %v", got)
	}
}

func TestDuplicateNames(t *testing.T) {
	tests := []struct {
		name string
		body string
		want metaerrors.ErrorCode
	}{
		{
			name: "element",
			body: `<Element name="A" displayNameID="a"/><Element name="A" displayNameID="a2"/>`,
			want: metaerrors.ErrDuplicateName,
		},
		{
			name: "property",
			body: `<Element name="A" displayNameID="a">
  <Property name="p" displayNameID="p" type="string"/>
  <Property name="p" displayNameID="p" type="integer"/>
</Element>`,
			want: metaerrors.ErrDuplicateProperty,
		},
		{
			name: "builtin choice set",
			body: `<ChoiceType name="units"><Choice name="x" displayNameID="x"/></ChoiceType>`,
			want: metaerrors.ErrDuplicateName,
		},
		{
			name: "structure member",
			body: `<Structure name="S" displayNameID="s">
  <Member name="m" displayNameID="m" type="string"/>
  <Member name="m" displayNameID="m" type="string"/>
</Structure>`,
			want: metaerrors.ErrDuplicateProperty,
		},
		{
			name: "slot",
			body: `<Element name="A" displayNameID="a">
  <Slot name="s" displayNameID="s" multipleCardinality="true"/>
  <Slot name="s" displayNameID="s" multipleCardinality="false"/>
</Element>`,
			want: metaerrors.ErrDuplicateName,
		},
		{
			name: "constructor",
			body: `<Class name="C" displayNameID="c">
  <Constructor name="C" displayNameID="c1"/>
  <Constructor name="C" displayNameID="c2"/>
</Class>`,
			want: metaerrors.ErrDuplicateConstructor,
		},
		{
			name: "value validator",
			body: `<Validators>
  <ValueValidator name="v" class="PositiveValidator"/>
  <ValueValidator name="v" class="NotBlankValidator"/>
</Validators>`,
			want: metaerrors.ErrDuplicateName,
		},
		{
			name: "style",
			body: `<Style name="s" displayNameID="s"/><Style name="s" displayNameID="s"/>`,
			want: metaerrors.ErrDuplicateName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(wrap(tt.body)), Config{})
			wantCodes(t, err, tt.want)
		})
	}
}

func TestRequiredAttributes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []metaerrors.ErrorCode
	}{
		{
			name: "property missing everything",
			body: `<Element name="A" displayNameID="a"><Property/></Element>`,
			want: []metaerrors.ErrorCode{metaerrors.ErrNameRequired, metaerrors.ErrDisplayNameIDRequired, metaerrors.ErrTypeRequired},
		},
		{
			name: "unknown type",
			body: `<Element name="A" displayNameID="a"><Property name="p" displayNameID="p" type="blob"/></Element>`,
			want: []metaerrors.ErrorCode{metaerrors.ErrInvalidType},
		},
		{
			name: "list without subType",
			body: `<Element name="A" displayNameID="a"><Property name="p" displayNameID="p" type="list"/></Element>`,
			want: []metaerrors.ErrorCode{metaerrors.ErrMissingSubType},
		},
		{
			name: "unknown choice set",
			body: `<Element name="A" displayNameID="a"><Property name="p" displayNameID="p" type="choice" detailType="nope"/></Element>`,
			want: []metaerrors.ErrorCode{metaerrors.ErrInvalidChoiceType},
		},
		{
			name: "structure without detail",
			body: `<Element name="A" displayNameID="a"><Property name="p" displayNameID="p" type="structure"/></Element>`,
			want: []metaerrors.ErrorCode{metaerrors.ErrStructTypeRequired},
		},
		{
			name: "undefined structure",
			body: `<Element name="A" displayNameID="a"><Property name="p" displayNameID="p" type="structRef" detailType="Nope"/></Element>`,
			want: []metaerrors.ErrorCode{metaerrors.ErrInvalidStructType},
		},
		{
			name: "element ref without detail",
			body: `<Element name="A" displayNameID="a"><Property name="p" displayNameID="p" type="elementRef"/></Element>`,
			want: []metaerrors.ErrorCode{metaerrors.ErrElementRefTypeRequired},
		},
		{
			name: "self reference outside element",
			body: `<Structure name="S" displayNameID="s"><Member name="m" displayNameID="m" type="elementRef" detailType="this"/></Structure>`,
			want: []metaerrors.ErrorCode{metaerrors.ErrElementRefTypeRequired},
		},
		{
			name: "choice without name",
			body: `<ChoiceType name="c"><Choice displayNameID="x"/></ChoiceType>`,
			want: []metaerrors.ErrorCode{metaerrors.ErrXMLNameRequired},
		},
		{
			name: "group without display name",
			body: `<Element name="A" displayNameID="a"><PropertyGroup><Property name="p"/></PropertyGroup></Element>`,
			want: []metaerrors.ErrorCode{metaerrors.ErrGroupNameIDRequired},
		},
		{
			name: "slot without cardinality",
			body: `<Element name="A" displayNameID="a"><Slot name="s" displayNameID="s"/></Element>`,
			want: []metaerrors.ErrorCode{metaerrors.ErrMultipleCardinalityRequired},
		},
		{
			name: "class member without data type",
			body: `<Class name="C" displayNameID="c"><Member name="m" displayNameID="m"/></Class>`,
			want: []metaerrors.ErrorCode{metaerrors.ErrDataTypeRequired},
		},
		{
			name: "trigger without validator",
			body: `<Element name="A" displayNameID="a"><SemanticValidator/></Element>`,
			want: []metaerrors.ErrorCode{metaerrors.ErrValidatorNameRequired},
		},
		{
			name: "validator without class",
			body: `<Validators><ValueValidator name="v"/></Validators>`,
			want: []metaerrors.ErrorCode{metaerrors.ErrClassNameRequired},
		},
		{
			name: "unknown validator class",
			body: `<Validators><SemanticValidator name="v" class="com.example.Missing"/></Validators>`,
			want: []metaerrors.ErrorCode{metaerrors.ErrInvalidValidator},
		},
		{
			name: "bad namespace",
			body: `<Element name="A" displayNameID="a" nameSpace="bogus"/>`,
			want: []metaerrors.ErrorCode{metaerrors.ErrInvalidNamespace},
		},
		{
			name: "element types on scalar property",
			body: `<Element name="A" displayNameID="a"><Property name="p" displayNameID="p" type="string"><Type name="A"/></Property></Element>`,
			want: []metaerrors.ErrorCode{metaerrors.ErrInvalidType},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(wrap(tt.body)), Config{})
			wantCodes(t, err, tt.want...)
		})
	}
}

func TestErrorCarriesPosition(t *testing.T) {
	_, err := Parse(strings.NewReader(wrap("\n<Element name=\"A\" displayNameID=\"a\">\n<Property name=\"p\" displayNameID=\"p\" type=\"blob\"/>\n</Element>")), Config{})
	defs, ok := metaerrors.AsDefinitions(err)
	if !ok || len(defs) != 1 {
		t.Fatalf("Parse() error = %v", err)
	}
	if defs[0].Path != "/ReportMetaData/Element[A]/Property[p]" {
		t.Fatalf("path = %q", defs[0].Path)
	}
	if defs[0].Line != 3 {
		t.Fatalf("line = %d, want 3", defs[0].Line)
	}
}

func TestMethodArguments(t *testing.T) {
	b, err := build(t, wrap(`
  <Class name="C" displayNameID="c">
    <Method name="m" displayNameID="m">
      <Argument type="string"/>
      <Argument name="a" type="string"/>
      <Argument name="a" type="number"/>
    </Method>
  </Class>`))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	wantCodes(t, b.Errors(), metaerrors.ErrDuplicateName)
	c, ok := b.dict.Class("C")
	if !ok || c.MethodCount() != 1 {
		t.Fatalf("class C = %v, %v", c, ok)
	}
	for m := range c.Methods() {
		if args := m.Arguments(); len(args) != 1 || args[0].Type() != "string" {
			t.Fatalf("arguments = %v", args)
		}
	}
}

func TestBuilderEvents(t *testing.T) {
	b := NewBuilder(Config{})
	pos := Position{Line: 1, Column: 1}
	steps := []func() error{
		func() error { return b.StartElement("ReportMetaData", nil, pos) },
		func() error {
			return b.StartElement("Element", Attributes{{Name: "name", Value: "A"}, {Name: "displayNameID", Value: "a"}}, pos)
		},
		func() error {
			return b.StartElement("Property", Attributes{
				{Name: "name", Value: "p"},
				{Name: "displayNameID", Value: "p"},
				{Name: "type", Value: "literalString"},
			}, pos)
		},
		func() error { return b.StartElement("Default", nil, pos) },
		func() error { return b.CharData([]byte("  keep "), pos) },
		func() error { return b.CharData([]byte("me  "), pos) },
		func() error { return b.EndElement("Default", pos) },
		func() error { return b.EndElement("Property", pos) },
		func() error { return b.EndElement("Element", pos) },
		func() error { return b.EndElement("ReportMetaData", pos) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d error = %v", i, err)
		}
	}
	d, err := b.Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	p := mustProperty(t, mustElement(t, d, "A"), "p")
	if got, _ := p.Default(); got != "  keep me  " {
		t.Fatalf("default = %q", got)
	}
	if _, err := b.Finish(); err == nil {
		t.Fatal("second Finish() error = nil")
	}
}

func TestFinishIncompleteDocument(t *testing.T) {
	b := NewBuilder(Config{})
	if err := b.StartElement("ReportMetaData", nil, Position{Line: 1, Column: 1}); err != nil {
		t.Fatalf("StartElement() error = %v", err)
	}
	if _, err := b.Finish(); !metaerrors.IsFatal(err) {
		t.Fatalf("Finish() error = %v, want fatal", err)
	}
}

func TestMalformedMarkupIsFatal(t *testing.T) {
	_, err := Parse(strings.NewReader(`<ReportMetaData><Element name="A">`), Config{})
	var fatal *metaerrors.Fatal
	if !errors.As(err, &fatal) || fatal.Code != string(metaerrors.ErrMarkupParse) {
		t.Fatalf("Parse() error = %v, want markup fatal", err)
	}
}

func TestParseLogsSummary(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	if _, err := Parse(strings.NewReader(wrap(`<Element name="A" displayNameID="a"/>`)), Config{Logger: logger}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "dictionary finalized") || !strings.Contains(out, "elements=1") {
		t.Fatalf("log output = %q", out)
	}
}
