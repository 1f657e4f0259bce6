package repository

import (
	"fmt"
	"reflect"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	tDecimal     = reflect.TypeOf(decimal.Decimal{})
	tNullDecimal = reflect.TypeOf(decimal.NullDecimal{})
)

// NewRegistry returns the default BSON registry extended with codecs storing
// quantities as Decimal128. A missing or null demand decodes as invalid.
func NewRegistry() *bsoncodec.Registry {
	reg := bson.NewRegistry()
	reg.RegisterTypeEncoder(tDecimal, bsoncodec.ValueEncoderFunc(encodeDecimal))
	reg.RegisterTypeDecoder(tDecimal, bsoncodec.ValueDecoderFunc(decodeDecimal))
	reg.RegisterTypeEncoder(tNullDecimal, bsoncodec.ValueEncoderFunc(encodeNullDecimal))
	reg.RegisterTypeDecoder(tNullDecimal, bsoncodec.ValueDecoderFunc(decodeNullDecimal))
	return reg
}

func encodeDecimal(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tDecimal {
		return bsoncodec.ValueEncoderError{Name: "DecimalEncodeValue", Types: []reflect.Type{tDecimal}, Received: val}
	}
	return writeDecimal(vw, val.Interface().(decimal.Decimal))
}

func writeDecimal(vw bsonrw.ValueWriter, d decimal.Decimal) error {
	d128, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return fmt.Errorf("encode decimal %s: %w", d.String(), err)
	}
	return vw.WriteDecimal128(d128)
}

func decodeDecimal(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != tDecimal {
		return bsoncodec.ValueDecoderError{Name: "DecimalDecodeValue", Types: []reflect.Type{tDecimal}, Received: val}
	}
	d, _, err := readDecimal(vr)
	if err != nil {
		return err
	}
	val.Set(reflect.ValueOf(d))
	return nil
}

func encodeNullDecimal(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tNullDecimal {
		return bsoncodec.ValueEncoderError{Name: "NullDecimalEncodeValue", Types: []reflect.Type{tNullDecimal}, Received: val}
	}
	nd := val.Interface().(decimal.NullDecimal)
	if !nd.Valid {
		return vw.WriteNull()
	}
	return writeDecimal(vw, nd.Decimal)
}

func decodeNullDecimal(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != tNullDecimal {
		return bsoncodec.ValueDecoderError{Name: "NullDecimalDecodeValue", Types: []reflect.Type{tNullDecimal}, Received: val}
	}
	d, valid, err := readDecimal(vr)
	if err != nil {
		return err
	}
	val.Set(reflect.ValueOf(decimal.NullDecimal{Decimal: d, Valid: valid}))
	return nil
}

// readDecimal accepts every numeric BSON type and numeric strings. Null and
// undefined read as zero and report false.
func readDecimal(vr bsonrw.ValueReader) (decimal.Decimal, bool, error) {
	switch vr.Type() {
	case bsontype.Decimal128:
		d128, err := vr.ReadDecimal128()
		if err != nil {
			return decimal.Zero, false, err
		}
		d, err := decimal.NewFromString(d128.String())
		return d, err == nil, err
	case bsontype.Double:
		f, err := vr.ReadDouble()
		return decimal.NewFromFloat(f), err == nil, err
	case bsontype.Int32:
		i, err := vr.ReadInt32()
		return decimal.NewFromInt32(i), err == nil, err
	case bsontype.Int64:
		i, err := vr.ReadInt64()
		return decimal.NewFromInt(i), err == nil, err
	case bsontype.String:
		s, err := vr.ReadString()
		if err != nil {
			return decimal.Zero, false, err
		}
		d, err := decimal.NewFromString(s)
		return d, err == nil, err
	case bsontype.Null:
		return decimal.Zero, false, vr.ReadNull()
	case bsontype.Undefined:
		return decimal.Zero, false, vr.ReadUndefined()
	default:
		return decimal.Zero, false, fmt.Errorf("cannot decode %v into a decimal", vr.Type())
	}
}
