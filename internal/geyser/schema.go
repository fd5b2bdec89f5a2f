package geyser

import (
	"fmt"
	"sync"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// SubscribeMethod is the full gRPC method name of the bidi subscription.
const SubscribeMethod = "/geyser.Geyser/Subscribe"

// The descriptor mirrors the field numbers of the upstream geyser.proto and
// solana-storage.proto for the subset this package reads and writes. Other
// fields arrive as unknown fields and are ignored. proto2 syntax gives the
// filter booleans explicit presence, matching the upstream `optional`.

var (
	schemaOnce sync.Once
	schemaFile protoreflect.FileDescriptor
	schemaErr  error
)

type schemaSet struct {
	subscribeRequest   protoreflect.MessageDescriptor
	filterTransactions protoreflect.MessageDescriptor
	requestPing        protoreflect.MessageDescriptor
	subscribeUpdate    protoreflect.MessageDescriptor
}

func loadSchema() (schemaSet, error) {
	schemaOnce.Do(func() {
		schemaFile, schemaErr = protodesc.NewFile(fileDescriptorProto(), new(protoregistry.Files))
	})
	if schemaErr != nil {
		return schemaSet{}, fmt.Errorf("build geyser schema: %w", schemaErr)
	}
	msgs := schemaFile.Messages()
	return schemaSet{
		subscribeRequest:   msgs.ByName("SubscribeRequest"),
		filterTransactions: msgs.ByName("SubscribeRequestFilterTransactions"),
		requestPing:        msgs.ByName("SubscribeRequestPing"),
		subscribeUpdate:    msgs.ByName("SubscribeUpdate"),
	}, nil
}

const (
	optional = descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	repeated = descriptorpb.FieldDescriptorProto_LABEL_REPEATED

	tBool    = descriptorpb.FieldDescriptorProto_TYPE_BOOL
	tString  = descriptorpb.FieldDescriptorProto_TYPE_STRING
	tBytes   = descriptorpb.FieldDescriptorProto_TYPE_BYTES
	tInt32   = descriptorpb.FieldDescriptorProto_TYPE_INT32
	tUint64  = descriptorpb.FieldDescriptorProto_TYPE_UINT64
	tEnum    = descriptorpb.FieldDescriptorProto_TYPE_ENUM
	tMessage = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE
)

func field(name string, number int32, label descriptorpb.FieldDescriptorProto_Label, typ descriptorpb.FieldDescriptorProto_Type, typeName string) *descriptorpb.FieldDescriptorProto {
	f := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Label:  label.Enum(),
		Type:   typ.Enum(),
	}
	if typeName != "" {
		f.TypeName = proto.String(".geyser." + typeName)
	}
	return f
}

func oneofField(f *descriptorpb.FieldDescriptorProto, index int32) *descriptorpb.FieldDescriptorProto {
	f.OneofIndex = proto.Int32(index)
	return f
}

func message(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{Name: proto.String(name), Field: fields}
}

func fileDescriptorProto() *descriptorpb.FileDescriptorProto {
	subscribeRequest := message("SubscribeRequest",
		field("transactions", 3, repeated, tMessage, "SubscribeRequest.TransactionsEntry"),
		field("commitment", 6, optional, tEnum, "CommitmentLevel"),
		field("ping", 9, optional, tMessage, "SubscribeRequestPing"),
	)
	subscribeRequest.NestedType = []*descriptorpb.DescriptorProto{{
		Name: proto.String("TransactionsEntry"),
		Field: []*descriptorpb.FieldDescriptorProto{
			field("key", 1, optional, tString, ""),
			field("value", 2, optional, tMessage, "SubscribeRequestFilterTransactions"),
		},
		Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
	}}

	subscribeUpdate := message("SubscribeUpdate",
		field("filters", 1, repeated, tString, ""),
		oneofField(field("transaction", 4, optional, tMessage, "SubscribeUpdateTransaction"), 0),
		oneofField(field("ping", 6, optional, tMessage, "SubscribeUpdatePing"), 0),
		oneofField(field("pong", 9, optional, tMessage, "SubscribeUpdatePong"), 0),
	)
	subscribeUpdate.OneofDecl = []*descriptorpb.OneofDescriptorProto{{Name: proto.String("update_oneof")}}

	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("pumpscope/geyser_subset.proto"),
		Package: proto.String("geyser"),
		Syntax:  proto.String("proto2"),
		EnumType: []*descriptorpb.EnumDescriptorProto{{
			Name: proto.String("CommitmentLevel"),
			Value: []*descriptorpb.EnumValueDescriptorProto{
				{Name: proto.String("PROCESSED"), Number: proto.Int32(0)},
				{Name: proto.String("CONFIRMED"), Number: proto.Int32(1)},
				{Name: proto.String("FINALIZED"), Number: proto.Int32(2)},
			},
		}},
		MessageType: []*descriptorpb.DescriptorProto{
			subscribeRequest,
			message("SubscribeRequestFilterTransactions",
				field("vote", 1, optional, tBool, ""),
				field("failed", 2, optional, tBool, ""),
				field("account_include", 3, repeated, tString, ""),
				field("account_exclude", 4, repeated, tString, ""),
				field("signature", 5, optional, tString, ""),
				field("account_required", 6, repeated, tString, ""),
			),
			message("SubscribeRequestPing",
				field("id", 1, optional, tInt32, ""),
			),
			subscribeUpdate,
			message("SubscribeUpdateTransaction",
				field("transaction", 1, optional, tMessage, "SubscribeUpdateTransactionInfo"),
				field("slot", 2, optional, tUint64, ""),
			),
			message("SubscribeUpdateTransactionInfo",
				field("signature", 1, optional, tBytes, ""),
				field("is_vote", 2, optional, tBool, ""),
				field("transaction", 3, optional, tMessage, "Transaction"),
				field("meta", 4, optional, tMessage, "TransactionStatusMeta"),
				field("index", 5, optional, tUint64, ""),
			),
			message("Transaction",
				field("signatures", 1, repeated, tBytes, ""),
			),
			message("TransactionStatusMeta",
				field("err", 1, optional, tMessage, "TransactionError"),
				field("fee", 2, optional, tUint64, ""),
				field("log_messages", 6, repeated, tString, ""),
				field("log_messages_none", 11, optional, tBool, ""),
			),
			message("TransactionError",
				field("err", 1, optional, tBytes, ""),
			),
			message("SubscribeUpdatePing"),
			message("SubscribeUpdatePong",
				field("id", 1, optional, tInt32, ""),
			),
		},
	}
}
