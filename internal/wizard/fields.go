package wizard

import (
	"reflect"
	"strings"

	"github.com/nurpe/quotation-service/internal/model"
)

type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindSelect   FieldKind = "select"
	KindRadio    FieldKind = "radio"
	KindDate     FieldKind = "date"
	KindNumber   FieldKind = "number"
	KindEmail    FieldKind = "email"
	KindCheckbox FieldKind = "checkbox"
	KindFile     FieldKind = "file"
)

// formFields maps an input name (the json name) to its struct field index
// in model.FormState.
var formFields = func() map[string]fieldRef {
	t := reflect.TypeOf(model.FormState{})
	refs := make(map[string]fieldRef, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		refs[name] = fieldRef{index: i, kind: f.Type.Kind()}
	}
	return refs
}()

type fieldRef struct {
	index int
	kind  reflect.Kind
}

func lookupField(name string) (fieldRef, bool) {
	ref, ok := formFields[name]
	if !ok || (ref.kind != reflect.String && ref.kind != reflect.Bool) {
		return fieldRef{}, false
	}
	return ref, true
}

func setString(form *model.FormState, ref fieldRef, value string) {
	reflect.ValueOf(form).Elem().Field(ref.index).SetString(value)
}

func setBool(form *model.FormState, ref fieldRef, value bool) {
	reflect.ValueOf(form).Elem().Field(ref.index).SetBool(value)
}

func stringValue(form model.FormState, name string) string {
	ref, ok := lookupField(name)
	if !ok || ref.kind != reflect.String {
		return ""
	}
	return reflect.ValueOf(form).Field(ref.index).String()
}

func boolValue(form model.FormState, name string) bool {
	ref, ok := lookupField(name)
	if !ok || ref.kind != reflect.Bool {
		return false
	}
	return reflect.ValueOf(form).Field(ref.index).Bool()
}

// dependentCity names the city that a country change invalidates.
var dependentCity = map[string]string{
	"originCountry":      "originCity",
	"destinationCountry": "destinationCity",
}
