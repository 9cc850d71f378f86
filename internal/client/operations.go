package client

import (
	"context"
	"fmt"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/emp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/protocol"
)

// Hubject 接口路径，%s 为服务商标识
const (
	pathEVSEData               = protocol.BasePath + protocol.EVSEPullDataV23 + "/providers/%s/data-records"
	pathEVSEStatus             = protocol.BasePath + protocol.EVSEPullStatusV21 + "/providers/%s/status-records"
	pathEVSEStatusByID         = protocol.BasePath + protocol.EVSEPullStatusV21 + "/providers/%s/status-records-by-id"
	pathEVSEStatusByOperator   = protocol.BasePath + protocol.EVSEPullStatusV21 + "/providers/%s/status-records-by-operator-id"
	pathPricingProducts        = protocol.BasePath + protocol.DynamicPricingV10 + "/providers/%s/pricing-products"
	pathEVSEPricing            = protocol.BasePath + protocol.DynamicPricingV10 + "/providers/%s/evse-pricing"
	pathAuthenticationData     = protocol.BasePath + protocol.AuthDataV21 + "/providers/%s/push-request"
	pathRemoteReservationStart = protocol.BasePath + protocol.ChargingV21 + "/providers/%s/authorize-remote-reservation/start"
	pathRemoteReservationStop  = protocol.BasePath + protocol.ChargingV21 + "/providers/%s/authorize-remote-reservation/stop"
	pathRemoteStart            = protocol.BasePath + protocol.ChargingV21 + "/providers/%s/authorize-remote/start"
	pathRemoteStop             = protocol.BasePath + protocol.ChargingV21 + "/providers/%s/authorize-remote/stop"
	pathChargeDetailRecords    = protocol.BasePath + protocol.CDRManagementV22 + "/providers/%s/get-charge-detail-records-request"
)

// 分页遍历的最大页数，防止服务端分页信息异常时无限循环
const maxPages = 10000

// PullEVSEData 拉取一页充电点静态数据
func (c *Client) PullEVSEData(ctx context.Context, req *emp.PullEVSEDataRequest) (*emp.PullEVSEDataResponse, error) {
	return call(ctx, c, "PullEVSEData", providerPath(pathEVSEData, req.ProviderID), &req.PagedRequest, req,
		func(data []byte, opts ...emp.Option) (*emp.PullEVSEDataResponse, error) {
			return emp.ParsePullEVSEDataResponse(req, data, opts...)
		})
}

// PullAllEVSEData 从请求的页码开始依次拉取，直到最后一页
func (c *Client) PullAllEVSEData(ctx context.Context, req *emp.PullEVSEDataRequest) ([]oicp.EVSEDataRecord, error) {
	var records []oicp.EVSEDataRecord
	next := req.WithPagedRequest(c.defaultPaging(req.PagedRequest))
	for i := 0; i < maxPages; i++ {
		resp, err := c.PullEVSEData(ctx, next)
		if err != nil {
			return records, err
		}
		records = append(records, resp.EVSEDataRecords...)
		if !resp.HasNext() {
			return records, nil
		}
		next = next.WithPagedRequest(next.PagedRequest.NextPage())
		next.Request = next.Request.Renew()
	}
	return records, fmt.Errorf("hubject PullEVSEData: more than %d pages", maxPages)
}

// PullEVSEStatus 拉取全部或指定区域的充电点状态
func (c *Client) PullEVSEStatus(ctx context.Context, req *emp.PullEVSEStatusRequest) (*emp.PullEVSEStatusResponse, error) {
	return call(ctx, c, "PullEVSEStatus", providerPath(pathEVSEStatus, req.ProviderID), nil, req,
		func(data []byte, opts ...emp.Option) (*emp.PullEVSEStatusResponse, error) {
			return emp.ParsePullEVSEStatusResponse(req, data, opts...)
		})
}

// PullEVSEStatusById 按EVSE标识拉取状态，单次最多100个
func (c *Client) PullEVSEStatusById(ctx context.Context, req *emp.PullEVSEStatusByIdRequest) (*emp.PullEVSEStatusByIdResponse, error) {
	return call(ctx, c, "PullEVSEStatusById", providerPath(pathEVSEStatusByID, req.ProviderID), nil, req,
		func(data []byte, opts ...emp.Option) (*emp.PullEVSEStatusByIdResponse, error) {
			return emp.ParsePullEVSEStatusByIdResponse(req, data, opts...)
		})
}

// PullEVSEStatusByIds 将任意数量的EVSE标识分批查询并合并结果
func (c *Client) PullEVSEStatusByIds(ctx context.Context, providerID oicp.ProviderID, evseIDs []oicp.EVSEID, opts ...emp.Option) ([]oicp.EVSEStatusRecord, error) {
	var records []oicp.EVSEStatusRecord
	for _, chunk := range emp.ChunkEVSEIDs(evseIDs) {
		resp, err := c.PullEVSEStatusById(ctx, emp.NewPullEVSEStatusByIdRequest(providerID, chunk, opts...))
		if err != nil {
			return records, err
		}
		records = append(records, resp.EVSEStatusRecords.EvseStatusRecord...)
	}
	return records, nil
}

// PullEVSEStatusByOperatorId 按运营商拉取状态
func (c *Client) PullEVSEStatusByOperatorId(ctx context.Context, req *emp.PullEVSEStatusByOperatorIdRequest) (*emp.PullEVSEStatusByOperatorIdResponse, error) {
	return call(ctx, c, "PullEVSEStatusByOperatorId", providerPath(pathEVSEStatusByOperator, req.ProviderID), nil, req,
		func(data []byte, opts ...emp.Option) (*emp.PullEVSEStatusByOperatorIdResponse, error) {
			return emp.ParsePullEVSEStatusByOperatorIdResponse(req, data, opts...)
		})
}

// PullPricingProductData 拉取一页计价产品
func (c *Client) PullPricingProductData(ctx context.Context, req *emp.PullPricingProductDataRequest) (*emp.PullPricingProductDataResponse, error) {
	return call(ctx, c, "PullPricingProductData", providerPath(pathPricingProducts, req.ProviderID), &req.PagedRequest, req,
		func(data []byte, opts ...emp.Option) (*emp.PullPricingProductDataResponse, error) {
			return emp.ParsePullPricingProductDataResponse(req, data, opts...)
		})
}

// PullAllPricingProductData 依次拉取全部计价产品
func (c *Client) PullAllPricingProductData(ctx context.Context, req *emp.PullPricingProductDataRequest) ([]oicp.PricingProductData, error) {
	var products []oicp.PricingProductData
	next := req.WithPagedRequest(c.defaultPaging(req.PagedRequest))
	for i := 0; i < maxPages; i++ {
		resp, err := c.PullPricingProductData(ctx, next)
		if err != nil {
			return products, err
		}
		products = append(products, resp.PricingProductData...)
		if !resp.HasNext() {
			return products, nil
		}
		next = next.WithPagedRequest(next.PagedRequest.NextPage())
		next.Request = next.Request.Renew()
	}
	return products, fmt.Errorf("hubject PullPricingProductData: more than %d pages", maxPages)
}

// PullEVSEPricing 拉取充电点计价
func (c *Client) PullEVSEPricing(ctx context.Context, req *emp.PullEVSEPricingRequest) (*emp.PullEVSEPricingResponse, error) {
	return call(ctx, c, "PullEVSEPricing", providerPath(pathEVSEPricing, req.ProviderID), nil, req,
		func(data []byte, opts ...emp.Option) (*emp.PullEVSEPricingResponse, error) {
			return emp.ParsePullEVSEPricingResponse(req, data, opts...)
		})
}

// PushAuthenticationData 推送离线授权数据
func (c *Client) PushAuthenticationData(ctx context.Context, req *emp.PushAuthenticationDataRequest) (*emp.Acknowledgement[*emp.PushAuthenticationDataRequest], error) {
	return call(ctx, c, "PushAuthenticationData", providerPath(pathAuthenticationData, req.ProviderID()), nil, req,
		func(data []byte, opts ...emp.Option) (*emp.Acknowledgement[*emp.PushAuthenticationDataRequest], error) {
			return emp.ParseAcknowledgement(req, data, opts...)
		})
}

// AuthorizeRemoteReservationStart 远程预约
func (c *Client) AuthorizeRemoteReservationStart(ctx context.Context, req *emp.AuthorizeRemoteReservationStartRequest) (*emp.Acknowledgement[*emp.AuthorizeRemoteReservationStartRequest], error) {
	return call(ctx, c, "AuthorizeRemoteReservationStart", providerPath(pathRemoteReservationStart, req.ProviderID), nil, req,
		func(data []byte, opts ...emp.Option) (*emp.Acknowledgement[*emp.AuthorizeRemoteReservationStartRequest], error) {
			return emp.ParseAcknowledgement(req, data, opts...)
		})
}

// AuthorizeRemoteReservationStop 取消远程预约
func (c *Client) AuthorizeRemoteReservationStop(ctx context.Context, req *emp.AuthorizeRemoteReservationStopRequest) (*emp.Acknowledgement[*emp.AuthorizeRemoteReservationStopRequest], error) {
	return call(ctx, c, "AuthorizeRemoteReservationStop", providerPath(pathRemoteReservationStop, req.ProviderID), nil, req,
		func(data []byte, opts ...emp.Option) (*emp.Acknowledgement[*emp.AuthorizeRemoteReservationStopRequest], error) {
			return emp.ParseAcknowledgement(req, data, opts...)
		})
}

// AuthorizeRemoteStart 远程启动充电
func (c *Client) AuthorizeRemoteStart(ctx context.Context, req *emp.AuthorizeRemoteStartRequest) (*emp.Acknowledgement[*emp.AuthorizeRemoteStartRequest], error) {
	return call(ctx, c, "AuthorizeRemoteStart", providerPath(pathRemoteStart, req.ProviderID), nil, req,
		func(data []byte, opts ...emp.Option) (*emp.Acknowledgement[*emp.AuthorizeRemoteStartRequest], error) {
			return emp.ParseAcknowledgement(req, data, opts...)
		})
}

// AuthorizeRemoteStop 远程停止充电
func (c *Client) AuthorizeRemoteStop(ctx context.Context, req *emp.AuthorizeRemoteStopRequest) (*emp.Acknowledgement[*emp.AuthorizeRemoteStopRequest], error) {
	return call(ctx, c, "AuthorizeRemoteStop", providerPath(pathRemoteStop, req.ProviderID), nil, req,
		func(data []byte, opts ...emp.Option) (*emp.Acknowledgement[*emp.AuthorizeRemoteStopRequest], error) {
			return emp.ParseAcknowledgement(req, data, opts...)
		})
}

// GetChargeDetailRecords 查询一页充电详单
func (c *Client) GetChargeDetailRecords(ctx context.Context, req *emp.GetChargeDetailRecordsRequest) (*emp.GetChargeDetailRecordsResponse, error) {
	return call(ctx, c, "GetChargeDetailRecords", providerPath(pathChargeDetailRecords, req.ProviderID), &req.PagedRequest, req,
		func(data []byte, opts ...emp.Option) (*emp.GetChargeDetailRecordsResponse, error) {
			return emp.ParseGetChargeDetailRecordsResponse(req, data, opts...)
		})
}

// GetAllChargeDetailRecords 依次查询时间范围内的全部充电详单
func (c *Client) GetAllChargeDetailRecords(ctx context.Context, req *emp.GetChargeDetailRecordsRequest) ([]oicp.ChargeDetailRecord, error) {
	var records []oicp.ChargeDetailRecord
	next := req.WithPagedRequest(c.defaultPaging(req.PagedRequest))
	for i := 0; i < maxPages; i++ {
		resp, err := c.GetChargeDetailRecords(ctx, next)
		if err != nil {
			return records, err
		}
		records = append(records, resp.ChargeDetailRecords...)
		if !resp.HasNext() {
			return records, nil
		}
		next = next.WithPagedRequest(next.PagedRequest.NextPage())
		next.Request = next.Request.Renew()
	}
	return records, fmt.Errorf("hubject GetChargeDetailRecords: more than %d pages", maxPages)
}

func (c *Client) defaultPaging(p emp.PagedRequest) emp.PagedRequest {
	if p.Size == nil {
		size := c.pageSize
		p.Size = &size
	}
	return p
}
