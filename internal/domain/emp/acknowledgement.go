package emp

import (
	"encoding/json"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

// Acknowledgement 通用确认响应，Req 为对应的请求类型
type Acknowledgement[Req any] struct {
	Response `json:"-"`
	Request  Req `json:"-" validate:"-"`

	Result              bool                      `json:"Result"`
	StatusCode          oicp.StatusCode           `json:"StatusCode" validate:"required"`
	SessionID           *oicp.SessionID           `json:"SessionID,omitempty" validate:"omitempty,oicp_session_id"`
	CPOPartnerSessionID *oicp.CPOPartnerSessionID `json:"CPOPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	EMPPartnerSessionID *oicp.EMPPartnerSessionID `json:"EMPPartnerSessionID,omitempty" validate:"omitempty,max=250"`
}

// NewAcknowledgement 创建确认响应
func NewAcknowledgement[Req any](request Req, result bool, statusCode oicp.StatusCode, opts ...Option) *Acknowledgement[Req] {
	return &Acknowledgement[Req]{
		Response:   newResponse(requestMeta(request), applyOptions(opts)),
		Request:    request,
		Result:     result,
		StatusCode: statusCode,
	}
}

// Success 成功确认
func Success[Req any](request Req, description string, opts ...Option) *Acknowledgement[Req] {
	return NewAcknowledgement(request, true, oicp.NewStatusCode(oicp.StatusCodeSuccess, description), opts...)
}

// Failure 失败确认
func Failure[Req any](request Req, code oicp.StatusCodes, description string, opts ...Option) *Acknowledgement[Req] {
	return NewAcknowledgement(request, false, oicp.NewStatusCode(code, description), opts...)
}

// ParseAcknowledgement 解析确认响应
func ParseAcknowledgement[Req any](request Req, data []byte, opts ...Option) (*Acknowledgement[Req], error) {
	ack := &Acknowledgement[Req]{
		Response: newResponse(requestMeta(request), applyOptions(opts)),
		Request:  request,
	}
	if err := decode(data, ack); err != nil {
		return nil, err
	}
	return ack, nil
}

// TryParseAcknowledgement 解析确认响应，失败时返回false
func TryParseAcknowledgement[Req any](request Req, data []byte, opts ...Option) (*Acknowledgement[Req], bool) {
	ack, err := ParseAcknowledgement(request, data, opts...)
	return ack, err == nil
}

// WithSession 附加会话标识
func (a *Acknowledgement[Req]) WithSession(sessionID *oicp.SessionID, cpo *oicp.CPOPartnerSessionID, emp *oicp.EMPPartnerSessionID) *Acknowledgement[Req] {
	a.SessionID = sessionID
	a.CPOPartnerSessionID = cpo
	a.EMPPartnerSessionID = emp
	return a
}

type acknowledgementJSON[Req any] Acknowledgement[Req]

// UnmarshalJSON Result 为必填的布尔字段
func (a *Acknowledgement[Req]) UnmarshalJSON(data []byte) error {
	if err := oicp.RequireFields(data, "Acknowledgement", "Result"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*acknowledgementJSON[Req])(a))
}

func (a *Acknowledgement[Req]) MessageType() string { return "Acknowledgement" }

func (a *Acknowledgement[Req]) Validate() error { return validateStruct(a) }

func (a *Acknowledgement[Req]) ToJSON() ([]byte, error) { return toJSON(a) }

func (a *Acknowledgement[Req]) HashCode() uint64 { return hashOf(a) }

// Equal 比较所有报文字段
func (a *Acknowledgement[Req]) Equal(other *Acknowledgement[Req]) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.Result == other.Result &&
		a.StatusCode.Equal(other.StatusCode) &&
		oicp.EqualPtr(a.SessionID, other.SessionID) &&
		oicp.EqualPtr(a.CPOPartnerSessionID, other.CPOPartnerSessionID) &&
		oicp.EqualPtr(a.EMPPartnerSessionID, other.EMPPartnerSessionID)
}

// ToBuilder 转换为可修改的构建器
func (a *Acknowledgement[Req]) ToBuilder() *AcknowledgementBuilder[Req] {
	return &AcknowledgementBuilder[Req]{
		Response:            a.Response,
		Request:             a.Request,
		Result:              a.Result,
		StatusCode:          &a.StatusCode,
		SessionID:           a.SessionID,
		CPOPartnerSessionID: a.CPOPartnerSessionID,
		EMPPartnerSessionID: a.EMPPartnerSessionID,
	}
}

// AcknowledgementBuilder 确认响应构建器
type AcknowledgementBuilder[Req any] struct {
	Response
	Request             Req
	Result              bool
	StatusCode          *oicp.StatusCode
	SessionID           *oicp.SessionID
	CPOPartnerSessionID *oicp.CPOPartnerSessionID
	EMPPartnerSessionID *oicp.EMPPartnerSessionID
}

// NewAcknowledgementBuilder 创建确认响应构建器
func NewAcknowledgementBuilder[Req any](request Req, opts ...Option) *AcknowledgementBuilder[Req] {
	return &AcknowledgementBuilder[Req]{
		Response: newResponse(requestMeta(request), applyOptions(opts)),
		Request:  request,
	}
}

// Build 校验必填字段并生成确认响应
func (b *AcknowledgementBuilder[Req]) Build() (*Acknowledgement[Req], error) {
	if b.StatusCode == nil {
		return nil, missing("StatusCode")
	}
	return build(&Acknowledgement[Req]{
		Response:            b.Response,
		Request:             b.Request,
		Result:              b.Result,
		StatusCode:          *b.StatusCode,
		SessionID:           b.SessionID,
		CPOPartnerSessionID: b.CPOPartnerSessionID,
		EMPPartnerSessionID: b.EMPPartnerSessionID,
	})
}
