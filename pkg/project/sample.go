package project

import "github.com/matzehuels/aepplanner/pkg/model"

// Sample returns a small demo project: a loyalty CRM feed, a web event
// stream and an offline order dump. Two of its schemas are profile enabled.
func Sample() State {
	return State{
		Schemas: []model.Schema{
			{
				ID:               "schema_crm_profile",
				Name:             "CRM Loyalty Profile",
				Class:            "XDM Individual Profile",
				IsProfileEnabled: true,
				Fields: []model.Field{
					{Name: "loyaltyId", Type: "string", Path: "loyalty.id", IsIdentity: true, IsRequired: true},
					{Name: "firstName", Type: "string", Path: "person.name.firstName"},
					{Name: "lastName", Type: "string", Path: "person.name.lastName"},
					{Name: "email", Type: "string", Path: "personalEmail.address"},
					{Name: "points", Type: "integer", Path: "loyalty.points"},
				},
			},
			{
				ID:               "schema_web_events",
				Name:             "Web Interaction Events",
				Class:            "XDM ExperienceEvent",
				IsProfileEnabled: true,
				Fields: []model.Field{
					{Name: "ecid", Type: "string", Path: "identityMap.ecid", IsIdentity: true},
					{Name: "eventType", Type: "string", Path: "eventType", IsRequired: true},
					{Name: "timestamp", Type: "date-time", Path: "timestamp", IsRequired: true},
					{Name: "webPageDetails", Type: "object", Path: "web.webPageDetails"},
				},
			},
			{
				ID:    "schema_offline_orders",
				Name:  "Offline Orders",
				Class: "XDM ExperienceEvent",
				Fields: []model.Field{
					{Name: "orderId", Type: "string", Path: "commerce.order.orderID", IsIdentity: true},
					{Name: "totalAmount", Type: "number", Path: "commerce.order.priceTotal"},
					{Name: "storeId", Type: "string", Path: "placeContext.placeId"},
				},
			},
		},
		Datasets: []model.Dataset{
			{ID: "ds_loyalty_daily", Name: "Daily Loyalty Export", SchemaID: "schema_crm_profile", Created: "2025-01-10"},
			{ID: "ds_web_stream", Name: "Website Activity Stream", SchemaID: "schema_web_events", Created: "2025-01-12"},
			{ID: "ds_pos_dump", Name: "POS Transaction Dump", SchemaID: "schema_offline_orders", Created: "2025-01-15"},
		},
		IngestNodes: []model.IngestNode{
			{ID: "dstr_web", Name: "Main Website Stream", SchemaID: "schema_web_events", TargetDatasetIDs: []string{"ds_web_stream"}, Type: model.IngestDatastream},
			{ID: "dstr_mobile", Name: "iOS App Stream", SchemaID: "schema_crm_profile", TargetDatasetIDs: []string{"ds_loyalty_daily"}, Type: model.IngestDatastream},
			{ID: "dstr_legacy_import", Name: "Legacy CRM Import", SchemaID: "schema_crm_profile", TargetDatasetIDs: []string{"ds_loyalty_daily"}, Type: model.IngestStatic},
		},
	}
}
