package geyser

import (
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

func (s schemaSet) newRequest(filter Filter) *dynamicpb.Message {
	req := dynamicpb.NewMessage(s.subscribeRequest)
	fields := s.subscribeRequest.Fields()

	if len(filter.Transactions) > 0 {
		entries := req.Mutable(fields.ByName("transactions")).Map()
		for name, tf := range filter.Transactions {
			entries.Set(protoreflect.ValueOfString(name).MapKey(), protoreflect.ValueOfMessage(s.newTransactionFilter(tf)))
		}
	}
	req.Set(fields.ByName("commitment"), protoreflect.ValueOfEnum(protoreflect.EnumNumber(filter.Commitment)))
	return req
}

func (s schemaSet) newTransactionFilter(tf TransactionFilter) *dynamicpb.Message {
	m := dynamicpb.NewMessage(s.filterTransactions)
	fields := s.filterTransactions.Fields()

	m.Set(fields.ByName("vote"), protoreflect.ValueOfBool(tf.Vote))
	m.Set(fields.ByName("failed"), protoreflect.ValueOfBool(tf.Failed))
	if tf.Signature != "" {
		m.Set(fields.ByName("signature"), protoreflect.ValueOfString(tf.Signature))
	}
	appendStrings(m, fields.ByName("account_include"), tf.AccountInclude)
	appendStrings(m, fields.ByName("account_exclude"), tf.AccountExclude)
	appendStrings(m, fields.ByName("account_required"), tf.AccountRequired)
	return m
}

func (s schemaSet) newControl(msg ControlMsg) *dynamicpb.Message {
	req := dynamicpb.NewMessage(s.subscribeRequest)
	if msg.Ping != nil {
		ping := dynamicpb.NewMessage(s.requestPing)
		ping.Set(s.requestPing.Fields().ByName("id"), protoreflect.ValueOfInt32(msg.Ping.ID))
		req.Set(s.subscribeRequest.Fields().ByName("ping"), protoreflect.ValueOfMessage(ping))
	}
	return req
}

func (s schemaSet) decodeUpdate(msg protoreflect.Message) *Update {
	fields := s.subscribeUpdate.Fields()
	u := &Update{
		Kind:    UpdateOther,
		Filters: stringList(msg, fields.ByName("filters")),
	}

	which := msg.WhichOneof(s.subscribeUpdate.Oneofs().ByName("update_oneof"))
	if which == nil {
		return u
	}
	switch which.Name() {
	case "transaction":
		u.Kind = UpdateTransaction
		u.Transaction = decodeTransaction(msg.Get(which).Message())
	case "ping":
		u.Kind = UpdatePing
		u.Ping = &Ping{}
	case "pong":
		pong := msg.Get(which).Message()
		u.Kind = UpdatePong
		u.Pong = &Ping{ID: int32(pong.Get(pong.Descriptor().Fields().ByName("id")).Int())}
	}
	return u
}

func decodeTransaction(m protoreflect.Message) *TransactionUpdate {
	fields := m.Descriptor().Fields()
	tx := &TransactionUpdate{Slot: m.Get(fields.ByName("slot")).Uint()}

	infoField := fields.ByName("transaction")
	if !m.Has(infoField) {
		return tx
	}
	info := m.Get(infoField).Message()
	infoFields := info.Descriptor().Fields()

	tx.IsVote = info.Get(infoFields.ByName("is_vote")).Bool()

	if f := infoFields.ByName("transaction"); info.Has(f) {
		inner := info.Get(f).Message()
		list := inner.Get(inner.Descriptor().Fields().ByName("signatures")).List()
		for i := 0; i < list.Len(); i++ {
			tx.Signatures = append(tx.Signatures, cloneBytes(list.Get(i).Bytes()))
		}
	}

	if f := infoFields.ByName("meta"); info.Has(f) {
		meta := info.Get(f).Message()
		metaFields := meta.Descriptor().Fields()
		tx.Failed = meta.Has(metaFields.ByName("err"))
		tx.Logs = stringList(meta, metaFields.ByName("log_messages"))
	}
	return tx
}

func appendStrings(m protoreflect.Message, fd protoreflect.FieldDescriptor, values []string) {
	if len(values) == 0 {
		return
	}
	list := m.Mutable(fd).List()
	for _, v := range values {
		list.Append(protoreflect.ValueOfString(v))
	}
}

func stringList(m protoreflect.Message, fd protoreflect.FieldDescriptor) []string {
	list := m.Get(fd).List()
	if list.Len() == 0 {
		return nil
	}
	out := make([]string, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		out = append(out, list.Get(i).String())
	}
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}
