package dialog

import "github.com/uma-arai/sbcntr-dining-concierge/internal/model"

// ElicitSlot は指定したスロットの再入力を求める応答を作成します
func ElicitSlot(session model.SessionAttributes, intentName string, slots model.Slots, slotToElicit, message string) model.DialogResponse {
	return model.DialogResponse{
		SessionAttributes: session,
		DialogAction: model.DialogAction{
			Type:         model.DialogActionElicitSlot,
			IntentName:   intentName,
			Slots:        slots,
			SlotToElicit: slotToElicit,
			Message:      model.PlainText(message),
		},
	}
}

// ConfirmIntent はインテントの確認を求める応答を作成します
func ConfirmIntent(session model.SessionAttributes, intentName string, slots model.Slots, message string) model.DialogResponse {
	return model.DialogResponse{
		SessionAttributes: session,
		DialogAction: model.DialogAction{
			Type:       model.DialogActionConfirmIntent,
			IntentName: intentName,
			Slots:      slots,
			Message:    model.PlainText(message),
		},
	}
}

// Close は会話を終了する応答を作成します
func Close(session model.SessionAttributes, state model.FulfillmentState, message string) model.DialogResponse {
	return model.DialogResponse{
		SessionAttributes: session,
		DialogAction: model.DialogAction{
			Type:             model.DialogActionClose,
			FulfillmentState: state,
			Message:          model.PlainText(message),
		},
	}
}

// Delegate はチャット基盤に次の動作を任せる応答を作成します
func Delegate(session model.SessionAttributes, slots model.Slots) model.DialogResponse {
	return model.DialogResponse{
		SessionAttributes: session,
		DialogAction: model.DialogAction{
			Type:  model.DialogActionDelegate,
			Slots: slots,
		},
	}
}
