package config

type param interface {
	key() string
	emptyValue() paramValue
}

type paramImpl struct {
	paramKey string
}

func (p paramImpl) key() string {
	return p.paramKey
}

func (p paramImpl) String() string {
	return p.paramKey
}

// StringParam represents params of string type
type StringParam struct {
	paramImpl
}

func newStringParam(key string) StringParam {
	return StringParam{paramImpl{paramKey: key}}
}

func (p StringParam) emptyValue() paramValue {
	return StringVal{val: new(string)}
}
