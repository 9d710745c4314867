package services

// Stage is one of the four customer-facing notification lifecycle points.
type Stage string

const (
	StageCreated      Stage = "Created"
	StageCostEstimate Stage = "CostEstimate"
	StageRepaired     Stage = "Repaired"
	StageDispatched   Stage = "Dispatched"
)

var StageNames = []string{
	string(StageCreated), string(StageCostEstimate), string(StageRepaired), string(StageDispatched),
}

type notificationTemplate struct {
	Subject string
	Email   string
	SMS     string
}

// Placeholders use {name} syntax; substitution happens in renderTemplate.
var notificationTemplates = map[Stage]notificationTemplate{
	StageCreated: {
		Subject: "Service Request Registered - #{id}",
		Email: `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px;">
  <div style="background-color: #f8f9fa; padding: 20px; text-align: center;">
    <h2 style="color: #007bff; margin: 0;">TechRepair Service</h2>
  </div>
  <div style="padding: 20px;">
    <h3 style="color: #28a745;">Service Request Registered!</h3>
    <p>Hi <strong>{name}</strong>,</p>
    <p>Your service request <strong>#{id}</strong> has been successfully registered with our repair center.</p>
    <div style="background-color: #e9ecef; padding: 15px; border-radius: 5px;">
      <p><strong>Request ID:</strong> {id}</p>
      <p><strong>Status:</strong> Under Review</p>
      <p><strong>Next Step:</strong> Our technicians will assess your device and provide a cost estimate soon.</p>
    </div>
    <p>You'll receive updates via email and SMS as your repair progresses.</p>
    <p>Best regards,<br><strong>TechRepair Team</strong></p>
  </div>
  <div style="background-color: #f8f9fa; padding: 10px; text-align: center; font-size: 12px; color: #6c757d;">
    Questions? Contact us at support@techrepair.com
  </div>
</div>`,
		SMS: "Hi {name}, your service request #{id} has been registered. You'll receive updates as we progress with your repair.",
	},

	StageCostEstimate: {
		Subject: "Repair Cost Estimate - #{id}",
		Email: `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px;">
  <div style="background-color: #f8f9fa; padding: 20px; text-align: center;">
    <h2 style="color: #007bff; margin: 0;">TechRepair Service</h2>
  </div>
  <div style="padding: 20px;">
    <h3 style="color: #ffc107;">Cost Estimate Ready</h3>
    <p>Hi <strong>{name}</strong>,</p>
    <p>We've completed the assessment of your device for request <strong>#{id}</strong>.</p>
    <div style="background-color: #fff3cd; padding: 15px; border-radius: 5px; border-left: 4px solid #ffc107;">
      <h4 style="margin-top: 0; color: #856404;">Estimated Repair Cost</h4>
      <p style="font-size: 24px; font-weight: bold; color: #856404;">&#8377;{amount}</p>
      <p><strong>Breakdown:</strong> {description}</p>
    </div>
    <p><strong>Please approve this estimate to proceed with the repair.</strong></p>
    <p>Best regards,<br><strong>TechRepair Team</strong></p>
  </div>
  <div style="background-color: #f8f9fa; padding: 10px; text-align: center; font-size: 12px; color: #6c757d;">
    Questions? Contact us at support@techrepair.com
  </div>
</div>`,
		SMS: "Hi {name}, estimated repair cost for request #{id} is Rs.{amount}. Please approve to proceed. {description}",
	},

	StageRepaired: {
		Subject: "Device Repaired - #{id}",
		Email: `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px;">
  <div style="background-color: #f8f9fa; padding: 20px; text-align: center;">
    <h2 style="color: #007bff; margin: 0;">TechRepair Service</h2>
  </div>
  <div style="padding: 20px;">
    <h3 style="color: #28a745;">Device Repaired!</h3>
    <p>Hi <strong>{name}</strong>,</p>
    <p>Great news! Your device for request <strong>#{id}</strong> has been successfully repaired and tested.</p>
    <div style="background-color: #d4edda; padding: 15px; border-radius: 5px; border-left: 4px solid #28a745;">
      <h4 style="margin-top: 0; color: #155724;">Repair Completed</h4>
      <p><strong>Work Done:</strong> {workDone}</p>
      <p><strong>Quality Check:</strong> Passed</p>
      <p><strong>Status:</strong> Ready for Dispatch</p>
    </div>
    <p>Your device will be carefully packaged and dispatched shortly. You'll receive tracking details once shipped.</p>
    <p>Best regards,<br><strong>TechRepair Team</strong></p>
  </div>
  <div style="background-color: #f8f9fa; padding: 10px; text-align: center; font-size: 12px; color: #6c757d;">
    Questions? Contact us at support@techrepair.com
  </div>
</div>`,
		SMS: "Hi {name}, your device for request #{id} is repaired and ready for dispatch. Work done: {workDone}",
	},

	StageDispatched: {
		Subject: "Device Shipped - #{id}",
		Email: `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px;">
  <div style="background-color: #f8f9fa; padding: 20px; text-align: center;">
    <h2 style="color: #007bff; margin: 0;">TechRepair Service</h2>
  </div>
  <div style="padding: 20px;">
    <h3 style="color: #17a2b8;">Device Shipped!</h3>
    <p>Hi <strong>{name}</strong>,</p>
    <p>Your repaired device for request <strong>#{id}</strong> has been shipped and is on its way to you!</p>
    <div style="background-color: #d1ecf1; padding: 15px; border-radius: 5px; border-left: 4px solid #17a2b8;">
      <h4 style="margin-top: 0; color: #0c5460;">Shipping Details</h4>
      <p><strong>Tracking ID:</strong> <span style="font-family: monospace;">{trackingNo}</span></p>
      <p><strong>Courier:</strong> {courier}</p>
      <p><strong>Expected Delivery:</strong> {expectedDelivery}</p>
    </div>
    <p><strong>Important:</strong> Please keep your tracking ID safe and someone should be available to receive the package.</p>
    <p>Best regards,<br><strong>TechRepair Team</strong></p>
  </div>
  <div style="background-color: #f8f9fa; padding: 10px; text-align: center; font-size: 12px; color: #6c757d;">
    Questions? Contact us at support@techrepair.com
  </div>
</div>`,
		SMS: "Hi {name}, your device for request #{id} has been shipped. Tracking ID: {trackingNo}. Expected delivery: {expectedDelivery}",
	},
}
