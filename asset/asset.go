// Package asset maps artifact file paths to asset types and media types.
//
// Classification is extension-driven. Model and dataset paths require an
// extension; software classification always succeeds with the generic
// generator type.
package asset

import (
	"path/filepath"
	"strings"

	"github.com/provenact/provenact/errs"
)

// Type tags an ingredient with the semantic category of its content.
type Type string

const (
	TypeModel           Type = "c2pa.types.model"
	TypeModelOnnx       Type = "c2pa.types.model.onnx"
	TypeModelTensorFlow Type = "c2pa.types.model.tensorflow"
	TypeModelPytorch    Type = "c2pa.types.model.pytorch"
	TypeModelOpenVino   Type = "c2pa.types.model.openvino"
	TypeModelKeras      Type = "c2pa.types.model.keras"
	TypeModelJax        Type = "c2pa.types.model.jax"
	TypeModelMlNet      Type = "c2pa.types.model.mlnet"
	TypeModelMxNet      Type = "c2pa.types.model.mxnet"

	TypeDataset           Type = "c2pa.types.dataset"
	TypeDatasetOnnx       Type = "c2pa.types.dataset.onnx"
	TypeDatasetTensorFlow Type = "c2pa.types.dataset.tensorflow"
	TypeDatasetPytorch    Type = "c2pa.types.dataset.pytorch"
	TypeDatasetOpenVino   Type = "c2pa.types.dataset.openvino"
	TypeDatasetKeras      Type = "c2pa.types.dataset.keras"
	TypeDatasetJax        Type = "c2pa.types.dataset.jax"
	TypeDatasetMlNet      Type = "c2pa.types.dataset.mlnet"
	TypeDatasetMxNet      Type = "c2pa.types.dataset.mxnet"

	TypeFormatNumpy    Type = "c2pa.types.format.numpy"
	TypeFormatProtobuf Type = "c2pa.types.format.protobuf"
	TypeFormatPickle   Type = "c2pa.types.format.pickle"

	// TypeGenerator marks software that produced or processed an artifact.
	TypeGenerator Type = "c2pa.types.generator"
)

// IsModel reports whether t is one of the model types.
func (t Type) IsModel() bool {
	switch t {
	case TypeModel, TypeModelOnnx, TypeModelTensorFlow, TypeModelPytorch,
		TypeModelOpenVino, TypeModelKeras, TypeModelJax, TypeModelMlNet, TypeModelMxNet:
		return true
	}
	return false
}

// IsDataset reports whether t is one of the dataset types.
func (t Type) IsDataset() bool {
	switch t {
	case TypeDataset, TypeDatasetOnnx, TypeDatasetTensorFlow, TypeDatasetPytorch,
		TypeDatasetOpenVino, TypeDatasetKeras, TypeDatasetJax, TypeDatasetMlNet, TypeDatasetMxNet:
		return true
	}
	return false
}

// IsSoftware reports whether t marks software content.
func (t Type) IsSoftware() bool { return t == TypeGenerator }

func ext(path string) string {
	e := filepath.Ext(path)
	if e == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(e, "."))
}

// ModelType classifies a model file by extension. Unrecognized extensions
// fall back to the generic model type; a missing extension is a Validation
// error.
func ModelType(path string) (Type, error) {
	switch e := ext(path); e {
	case "pb", "savedmodel", "tf":
		return TypeModelTensorFlow, nil
	case "pt", "pth", "pytorch":
		return TypeModelPytorch, nil
	case "onnx":
		return TypeModelOnnx, nil
	case "bin", "xml":
		return TypeModelOpenVino, nil
	case "h5", "keras", "hdf5":
		return TypeModelKeras, nil
	case "jax":
		return TypeModelJax, nil
	case "mlnet", "zip":
		return TypeModelMlNet, nil
	case "params", "json", "mxnet":
		return TypeModelMxNet, nil
	case "npy", "npz":
		return TypeFormatNumpy, nil
	case "protobuf", "proto":
		return TypeFormatProtobuf, nil
	case "pkl", "pickle":
		return TypeFormatPickle, nil
	case "":
		return "", errs.New(errs.KindValidation, "unsupported model format: file has no extension")
	default:
		return TypeModel, nil
	}
}

// DatasetType classifies a dataset file by extension. Unrecognized
// extensions fall back to the generic dataset type; a missing extension is
// a Validation error.
func DatasetType(path string) (Type, error) {
	switch e := ext(path); e {
	case "csv", "tsv", "txt", "json", "jsonl", "parquet", "orc", "avro",
		"npy", "npz", "pkl", "pickle", "jpg", "jpeg", "png", "bmp", "tiff":
		return TypeDataset, nil
	case "tfrecord", "tfrec", "pb", "proto", "tf":
		return TypeDatasetTensorFlow, nil
	case "pt", "pth", "pytorch":
		return TypeDatasetPytorch, nil
	case "onnx":
		return TypeDatasetOnnx, nil
	case "bin", "xml":
		return TypeDatasetOpenVino, nil
	case "h5", "hdf5", "keras":
		return TypeDatasetKeras, nil
	case "jax":
		return TypeDatasetJax, nil
	case "mlnet", "zip":
		return TypeDatasetMlNet, nil
	case "rec", "idx", "params", "lst", "mxnet":
		return TypeDatasetMxNet, nil
	case "":
		return "", errs.New(errs.KindValidation, "unsupported dataset format: file has no extension")
	default:
		return TypeDataset, nil
	}
}

// SoftwareType classifies a software file. Every path classifies as the
// generic generator type; this never fails.
func SoftwareType(path string) (Type, error) {
	return TypeGenerator, nil
}

// MediaType returns the media type recorded as the ingredient format.
// Unknown and missing extensions map to application/octet-stream.
func MediaType(path string) string {
	switch e := ext(path); e {
	case "pb", "protobuf", "proto":
		return "application/x-protobuf"
	case "savedmodel", "tf":
		return "application/x-tensorflow"
	case "pt", "pth", "pytorch":
		return "application/x-pytorch"
	case "onnx":
		return "application/onnx"
	case "bin", "xml":
		return "application/x-openvino"
	case "h5", "keras", "hdf5":
		return "application/x-hdf5"
	case "jax":
		return "application/x-jax"
	case "mlnet":
		return "application/x-mlnet"
	case "zip":
		return "application/zip"
	case "params", "mxnet":
		return "application/x-mxnet"
	case "json":
		return "application/json"
	case "npy", "npz":
		return "application/x-numpy"
	case "pkl", "pickle":
		return "application/x-pickle"
	case "csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
